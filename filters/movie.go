package filters

import (
	"bytes"
	"encoding/json"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/avgraph/avfilter"
	"github.com/richinsley/avgraph/frame"
)

// movieProbe is the handful of ffprobe's JSON fields this filter needs out
// of ffmpeg.Probe's full stream description.
type movieProbe struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// moviePriv holds a Movie source's file path and the decode pipe it spawns
// on first configure_links.
type moviePriv struct {
	Filename string `opt:"filename"`

	width, height        int
	sampleRate, channels int

	stdout io.ReadCloser
}

// MovieKind decodes raw video frames from a file via ffmpeg-go: its
// config_props probes the file for real dimensions (exercising
// configuration inheritance with genuine media metadata instead of a
// stub), and request_frame reads one packed rgba frame at a time from a
// piped ffmpeg decode.
var MovieKind = &avfilter.FilterKind{
	Name:      "movie",
	Shorthand: []string{"filename"},
	NewPriv:   func() interface{} { return &moviePriv{} },
	OutputPads: []avfilter.PadDescriptor{{
		Name:         "default",
		Media:        frame.MediaVideo,
		ConfigProps:  movieConfigProps,
		RequestFrame: movieRequestFrame,
	}},
}

func movieConfigProps(l *avfilter.Link) error {
	p := l.Src.Priv.(*moviePriv)

	data, err := ffmpeg.Probe(p.Filename)
	if err != nil {
		return &avfilter.InvalidConfigurationError{Op: "movie config_props", Err: err}
	}
	var probe movieProbe
	if err := json.Unmarshal([]byte(data), &probe); err != nil {
		return &avfilter.InvalidConfigurationError{Op: "movie config_props", Err: err}
	}
	for _, s := range probe.Streams {
		if s.CodecType == "video" {
			p.width, p.height = s.Width, s.Height
		}
	}
	if p.width == 0 || p.height == 0 {
		return &avfilter.InvalidConfigurationError{Op: "movie config_props", Err: strErr("no video stream found")}
	}
	l.W, l.H = p.width, p.height

	var stdout bytes.Buffer
	stream := ffmpeg.Input(p.Filename).
		Output("pipe:", ffmpeg.KwArgs{"format": "rawvideo", "pix_fmt": "rgba"}).
		WithOutput(&stdout).
		ErrorToStdOut()
	if err := stream.Run(); err != nil {
		return &avfilter.InvalidConfigurationError{Op: "movie config_props", Err: err}
	}
	p.stdout = io.NopCloser(bytes.NewReader(stdout.Bytes()))
	return nil
}

func movieRequestFrame(l *avfilter.Link) error {
	p := l.Src.Priv.(*moviePriv)
	frameSize := p.width * p.height * 4
	buf := make([]byte, frameSize)
	if _, err := io.ReadFull(p.stdout, buf); err != nil {
		return &avfilter.EOFError{Op: "movie request_frame"}
	}
	f := frame.NewVideoFrame(p.width, p.height, l.Format)
	copy(f.Data[0], buf)
	return avfilter.FilterFrame(l, f)
}
