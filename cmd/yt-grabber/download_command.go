package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/model"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var contentFlag string
	var outFlag string
	var resolutionFlag string
	var parallelFlag int
	var expandFlag bool

	cmd := &cobra.Command{
		Use:   "download URL...",
		Short: "Download video, subtitles or thumbnail for one or more URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			contentType, err := model.ParseContentType(contentFlag)
			if err != nil {
				return err
			}
			if strings.TrimSpace(outFlag) != "" {
				cfg.Download.OutputDir = outFlag
			}
			if strings.TrimSpace(resolutionFlag) != "" {
				cfg.Download.Resolution = resolutionFlag
			}
			if parallelFlag > 0 {
				cfg.Download.MaxParallel = parallelFlag
			}
			if cmd.Flags().Changed("expand-playlist") {
				cfg.Download.ExpandPlaylists = expandFlag
			}

			svc := ctx.services(cfg)
			runCtx := cmd.Context()
			out := cmd.OutOrStdout()

			urls := args
			if cfg.Download.ExpandPlaylists {
				urls, err = svc.Playlists.ExpandURLs(runCtx, args)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Expanded %d URL(s) into %d download(s)\n", len(args), len(urls))
			}

			queue := event.NewQueue(event.DefaultQueueSize)
			renderer := newProgressRenderer(out)
			svc.Downloads.SetUpdateCallback(func(task *model.DownloadTask) {
				if title := task.GetDisplayTitle(); title != task.URL {
					renderer.retitle(task.ID, title)
				}
			})

			started := 0
			var startErrs []error
			for _, url := range urls {
				task, err := svc.Downloads.StartDownload(runCtx, download.Request{
					URL:         url,
					ContentType: contentType,
					OutputDir:   cfg.Download.OutputDir,
					Resolution:  cfg.Download.Resolution,
				}, queue)
				if err != nil {
					startErrs = append(startErrs, fmt.Errorf("%s: %w", url, err))
					continue
				}
				renderer.track(task.ID, url)
				started++
			}

			// Labels are registered before rendering starts; early events wait in the queue.
			rendered := make(chan struct{})
			go func() {
				renderer.drain(queue)
				close(rendered)
			}()
			svc.Downloads.Wait()
			queue.Close()
			<-rendered

			tasks := svc.Downloads.GetAllTasks()
			rows := make([][]string, 0, len(tasks))
			failed := 0
			for _, task := range tasks {
				snap, _ := svc.Downloads.Snapshot(task.ID)
				if snap.Status == model.TaskStatusFailed {
					failed++
				}
				rows = append(rows, []string{
					snap.GetDisplayTitle(),
					string(snap.ContentType),
					snap.Status.String(),
					formatBytes(snap.Total),
					snap.OutputPath,
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Title", "Type", "Status", "Size", "Output"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
			}

			if failed > 0 {
				startErrs = append(startErrs, fmt.Errorf("%d of %d downloads failed", failed, started))
			}
			return errors.Join(startErrs...)
		},
	}

	cmd.Flags().StringVarP(&contentFlag, "type", "t", string(model.ContentVideo), "Content to fetch: video, subtitles or thumbnail")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVarP(&resolutionFlag, "resolution", "r", "", "Video resolution: best, 1080, 720, 480, 360 or 240")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 0, "Maximum parallel downloads (default from config)")
	cmd.Flags().BoolVar(&expandFlag, "expand-playlist", false, "Download every video of playlist URLs")
	return cmd
}

func formatBytes(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}
