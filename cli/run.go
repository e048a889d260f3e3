package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"playstore-dashboard/config"
	"playstore-dashboard/models"
	"playstore-dashboard/render"
	"playstore-dashboard/services"
	"playstore-dashboard/storage"
	"playstore-dashboard/utils"
)

func (a *app) openSource(ctx context.Context) (storage.TableSource, error) {
	if a.cfg.DataSource == config.SourcePostgres {
		src, err := storage.NewPostgresSource(ctx, a.cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: a.cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      a.logger,
		})
		if err != nil {
			return nil, err
		}
		return src, nil
	}
	return storage.NewCSVSource(a.cfg.AppsCSVPath, a.cfg.ReviewsCSVPath), nil
}

func (a *app) run(cmd *cobra.Command, task services.Task) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src, err := a.openSource(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	tables, err := src.Load(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("[cli] loaded %d apps and %d reviews from %s", len(tables.Apps), len(tables.Reviews), a.cfg.DataSource)

	loc, err := services.LoadGateLocation(a.cfg.GateTimezone)
	if err != nil {
		a.logger.Warn("[cli] %v, using a fixed +05:30 offset", err)
	}

	res, err := services.NewDispatcher(a.logger, a.clock, loc).Run(task, tables)
	if err != nil {
		return err
	}

	if err := a.write(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.Renderable {
		return nil
	}
	if a.opts.chartPath != "" {
		if err := writeChart(a.opts.chartPath, res); err != nil {
			return err
		}
		a.logger.Info("[cli] chart saved to %s", a.opts.chartPath)
	}
	if a.opts.snapshotPath != "" {
		if err := a.snapshot(ctx, res); err != nil {
			return err
		}
		a.logger.Info("[cli] snapshot saved to %s", a.opts.snapshotPath)
	}
	return nil
}

// write emits res in the selected format. Outside the viewing window only the
// JSON format carries data; every other format shows the warning.
func (a *app) write(stdout io.Writer, res *models.Result) error {
	if a.opts.format == FormatJSON {
		return a.toTarget(stdout, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		})
	}

	if !res.Renderable {
		if a.opts.format == FormatHTML {
			return a.toTarget(stdout, func(w io.Writer) error { return render.Report(w, res) })
		}
		return render.Table(stdout, res)
	}

	switch a.opts.format {
	case FormatCSV:
		return a.toTarget(stdout, func(w io.Writer) error {
			cw := storage.NewStreamCSVWriter(w)
			if err := cw.Write(res); err != nil {
				return err
			}
			return cw.Close()
		})
	case FormatXLSX:
		path := a.opts.out
		if path == "" {
			path = filepath.Join(a.cfg.OutputDir, slugOf(res)+".xlsx")
		}
		xw, err := storage.NewXLSXWriter(path)
		if err != nil {
			return err
		}
		if err := xw.Write(res); err != nil {
			_ = xw.Close()
			return err
		}
		if err := xw.Close(); err != nil {
			return err
		}
		a.logger.Info("[cli] workbook saved to %s", path)
		return nil
	case FormatHTML:
		return a.toTarget(stdout, func(w io.Writer) error { return render.Report(w, res) })
	default:
		return a.toTarget(stdout, func(w io.Writer) error { return render.Table(w, res) })
	}
}

// toTarget runs fn against --out when set, stdout otherwise.
func (a *app) toTarget(stdout io.Writer, fn func(io.Writer) error) error {
	if a.opts.out == "" {
		return fn(stdout)
	}
	if err := os.MkdirAll(filepath.Dir(a.opts.out), 0755); err != nil {
		return fmt.Errorf("output: create dir: %w", err)
	}
	f, err := os.Create(a.opts.out)
	if err != nil {
		return fmt.Errorf("output: create %q: %w", a.opts.out, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeChart(path string, res *models.Result) error {
	var buf bytes.Buffer
	if err := render.Chart(&buf, res); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("chart: create dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func (a *app) snapshot(ctx context.Context, res *models.Result) error {
	var page bytes.Buffer
	if err := render.Report(&page, res); err != nil {
		return err
	}
	png, err := (&render.Snapshotter{ChromeBin: a.cfg.ChromeBin}).Capture(ctx, page.Bytes())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.opts.snapshotPath), 0755); err != nil {
		return fmt.Errorf("snapshot: create dir: %w", err)
	}
	return os.WriteFile(a.opts.snapshotPath, png, 0644)
}

func slugOf(res *models.Result) string {
	if task, err := services.ParseTask(res.Task); err == nil {
		return task.Slug()
	}
	return "result"
}
