package download

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// DefaultProgressInterval is how often yt-dlp progress is sampled
const DefaultProgressInterval = 500 * time.Millisecond

// Progress is a byte-level progress sample
type Progress struct {
	Downloaded int64
	Total      int64 // 0 when the size is unknown
	Title      string
}

// Percent returns floor(100*downloaded/total), or 0 when the total is unknown
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	pct := int(p.Downloaded * 100 / p.Total)
	return min(max(pct, 0), 100)
}

// Result describes a finished run
type Result struct {
	OutputPath string
}

// Runner executes one yt-dlp run
type Runner interface {
	Run(ctx context.Context, url string, opts Options, progress func(Progress)) (*Result, error)
}

// YTDLPRunner runs yt-dlp through go-ytdlp
type YTDLPRunner struct {
	progressInterval time.Duration
}

// NewYTDLPRunner creates a runner with the default progress interval
func NewYTDLPRunner() *YTDLPRunner {
	return &YTDLPRunner{progressInterval: DefaultProgressInterval}
}

// Run downloads url with opts
func (r *YTDLPRunner) Run(ctx context.Context, url string, opts Options, progress func(Progress)) (*Result, error) {
	dl := r.command(opts)

	if progress != nil {
		dl.ProgressFunc(r.progressInterval, func(update ytdlp.ProgressUpdate) {
			p := Progress{
				Downloaded: int64(update.DownloadedBytes),
				Total:      int64(update.TotalBytes),
			}
			if update.Info != nil && update.Info.Title != nil {
				p.Title = *update.Info.Title
			}
			progress(p)
		})
	}

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	out := &Result{}
	if res != nil {
		info, err := res.GetExtractedInfo()
		if err == nil && len(info) > 0 && info[0].Filename != nil {
			out.OutputPath = *info[0].Filename
		}
	}
	return out, nil
}

// command applies opts to a fresh yt-dlp command
func (r *YTDLPRunner) command(opts Options) *ytdlp.Command {
	dl := ytdlp.New().
		Output(opts.Output)

	if opts.SocketTimeout > 0 {
		dl.SocketTimeout(opts.SocketTimeout.Seconds())
	}
	if opts.Retries > 0 {
		dl.Retries(strconv.Itoa(opts.Retries))
	}
	if opts.Format != "" {
		dl.Format(opts.Format)
	}
	if opts.MergeOutputFormat != "" {
		dl.MergeOutputFormat(opts.MergeOutputFormat)
	}
	if opts.SkipDownload {
		dl.SkipDownload()
	}
	if opts.WriteSubs {
		dl.WriteSubs()
	}
	if opts.WriteAutoSubs {
		dl.WriteAutoSubs()
	}
	if len(opts.SubLangs) > 0 {
		dl.SubLangs(strings.Join(opts.SubLangs, ","))
	}
	if opts.ConvertSubs != "" {
		dl.ConvertSubs(opts.ConvertSubs)
	}
	if opts.WriteThumbnail {
		dl.WriteThumbnail()
	}
	return dl
}
