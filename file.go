package remnantsav

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

// Options configures decoding of a .sav file.
type Options struct {
	// DisableCRCCheck skips the container's CRC32 verification (§4.2),
	// useful for inspecting a file whose trailing bytes were truncated or
	// hand-edited.
	DisableCRCCheck bool

	// A custom logger. When nil, a stderr logger filtered to error level is
	// used.
	Logger log.Logger
}

func (o *Options) logger() *log.Helper {
	if o == nil || o.Logger == nil {
		return log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stderr),
			log.FilterLevel(log.LevelError)))
	}
	return log.NewHelper(o.Logger)
}

func (o *Options) disableCRCCheck() bool {
	return o != nil && o.DisableCRCCheck
}

// OpenSavFile memory-maps name and decodes it as a .sav file.
func OpenSavFile(name string, opts *Options) (*Archive, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer data.Unmap()

	return decodeSavFile(data, opts)
}
