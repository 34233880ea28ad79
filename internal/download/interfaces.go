package download

import (
	"context"

	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	StartDownload(ctx context.Context, req Request, sink event.Sink) (*model.DownloadTask, error)
	Snapshot(id string) (model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetDownloadDirectory sets the directory used when a request has none
	SetDownloadDirectory(dir string)

	Wait()
}

var _ Downloader = (*Service)(nil)
