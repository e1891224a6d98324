package source

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/riff"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/StratusFearMe21/grezi-next-sub000/internal/geom"
)

// ImageSource is a raster image, possibly animated. Every frame shares the
// canvas size.
type ImageSource struct {
	format string
	size   geom.Vec2
	frames int
}

func NewImageSource(data []byte) (*ImageSource, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
	}

	frames := 1
	switch format {
	case "gif":
		frames, err = gifFrames(data)
	case "png":
		frames, err = apngFrames(data)
	case "webp":
		frames, err = webpFrames(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s frames: %v", ErrUnsupportedMedia, format, err)
	}

	return &ImageSource{
		format: format,
		size:   geom.V2(float64(cfg.Width), float64(cfg.Height)),
		frames: max(frames, 1),
	}, nil
}

func (s *ImageSource) PageCount() int {
	return s.frames
}

func (s *ImageSource) PageSize(index int) (geom.Vec2, error) {
	if index < 0 || index >= s.frames {
		return geom.Vec2{}, fmt.Errorf("frame %d of %d", index, s.frames)
	}
	return s.size, nil
}

func (s *ImageSource) Close() error {
	return nil
}

func gifFrames(data []byte) (int, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	return len(g.Image), nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// apngFrames reads num_frames from the acTL chunk, which must precede IDAT.
// A plain PNG has one frame.
func apngFrames(data []byte) (int, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, fmt.Errorf("bad signature")
	}
	rest := data[len(pngSignature):]
	for len(rest) >= 12 {
		n := binary.BigEndian.Uint32(rest[:4])
		typ := string(rest[4:8])
		if uint64(n)+12 > uint64(len(rest)) {
			return 0, fmt.Errorf("truncated %s chunk", typ)
		}
		switch typ {
		case "acTL":
			if n < 8 {
				return 0, fmt.Errorf("short acTL chunk")
			}
			return int(binary.BigEndian.Uint32(rest[8:12])), nil
		case "IDAT", "IEND":
			return 1, nil
		}
		rest = rest[12+n:]
	}
	return 1, nil
}

var (
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccANIM = riff.FourCC{'A', 'N', 'I', 'M'}
	fccANMF = riff.FourCC{'A', 'N', 'M', 'F'}
)

// webpFrames counts ANMF chunks when the file carries an ANIM chunk.
func webpFrames(data []byte) (int, error) {
	form, r, err := riff.NewReader(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	if form != fccWEBP {
		return 0, fmt.Errorf("form %q", form[:])
	}
	animated := false
	frames := 0
	for {
		id, _, _, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		switch id {
		case fccANIM:
			animated = true
		case fccANMF:
			frames++
		}
	}
	if !animated {
		return 1, nil
	}
	return frames, nil
}
