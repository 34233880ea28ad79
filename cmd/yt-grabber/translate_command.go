package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var targetFlag string
	var attemptsFlag int

	cmd := &cobra.Command{
		Use:   "translate FILE...",
		Short: "Translate .srt subtitle files line by line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if target := strings.TrimSpace(targetFlag); target != "" {
				if err := config.ValidateLanguage(target); err != nil {
					return err
				}
				cfg.Translation.TargetLang = target
			}
			if attemptsFlag > 0 {
				cfg.Translation.MaxAttempts = attemptsFlag
			}

			svc := ctx.services(cfg)
			out := cmd.OutOrStdout()

			queue := event.NewQueue(event.DefaultQueueSize)
			renderer := newProgressRenderer(out)
			var tasks []*model.TranslationTask
			var startErrs []error
			for _, path := range args {
				task, err := svc.Translations.StartTranslation(cmd.Context(), path, cfg.Translation.TargetLang, queue)
				if err != nil {
					startErrs = append(startErrs, err)
					continue
				}
				renderer.track(task.ID, filepath.Base(path))
				tasks = append(tasks, task)
			}

			// Labels are registered before rendering starts; early events wait in the queue.
			rendered := make(chan struct{})
			go func() {
				renderer.drain(queue)
				close(rendered)
			}()
			svc.Translations.Wait()
			queue.Close()
			<-rendered

			rows, failed := translationRows(svc.Translations, tasks)
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Output", "Lines", "Translated", "Kept", "Time"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
			}

			if failed > 0 {
				startErrs = append(startErrs, fmt.Errorf("%d of %d translations failed", failed, len(tasks)))
			}
			return errors.Join(startErrs...)
		},
	}

	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Target language (default from config)")
	cmd.Flags().IntVar(&attemptsFlag, "attempts", 0, "Attempts per line before keeping the original (default from config)")
	return cmd
}

func translationRows(svc translate.Translator, tasks []*model.TranslationTask) ([][]string, int) {
	rows := make([][]string, 0, len(tasks))
	failed := 0
	for _, task := range tasks {
		snap, _ := svc.Snapshot(task.ID)
		output := snap.OutputPath
		if snap.Status == model.TaskStatusFailed {
			failed++
			output = "failed: " + snap.LastError
		}
		rows = append(rows, []string{
			snap.GetDisplayTitle(),
			output,
			strconv.Itoa(snap.Lines),
			strconv.Itoa(snap.Translated),
			strconv.Itoa(snap.Fallbacks),
			snap.Duration().Round(time.Millisecond).String(),
		})
	}
	return rows, failed
}
