// Command jfifdump decodes a baseline JFIF/JPEG file and prints its headers.
//
// Usage:
//
//	jfifdump [flags] <file.jpg>
//
// The exit status is 0 when the whole file parses, 1 when it cannot be read or
// decoding fails, and 2 on a usage error. glog flags such as -v and
// -logtostderr are accepted.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/cocosip/go-jfif/codec"
	"github.com/cocosip/go-jfif/jpeg/baseline"
	"github.com/cocosip/go-jfif/jpeg/common"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	codec            string
	dcPredictor      string
	strictComponents bool
}

func registerFlags(fs *flag.FlagSet) *options {
	opts := &options{}
	fs.StringVar(&opts.codec, "codec", "jpeg-baseline", "codec name or transfer syntax UID")
	fs.StringVar(&opts.dcPredictor, "dc-predictor", baseline.PredictorDifference.String(),
		"DC predictor update rule: difference or absolute")
	fs.BoolVar(&opts.strictComponents, "strict-components", false,
		"fail on a frame component count other than 1 or 3")
	return opts
}

func main() {
	opts := registerFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file.jpg>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	code := run(opts, flag.Args(), os.Stdout, os.Stderr)
	glog.Flush()
	os.Exit(code)
}

func run(opts *options, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "expected exactly one input file")
		return exitUsage
	}

	c, err := codec.Get(opts.codec)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	params := c.GetDefaultParameters()
	params.SetParameter(baseline.ParamDCPredictor, opts.dcPredictor)
	params.SetParameter(baseline.ParamStrictComponents, opts.strictComponents)
	if err := params.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		err = fmt.Errorf("%w: %w", common.ErrIoFailure, err)
		glog.Error(err)
		fmt.Fprintln(stderr, err)
		return exitError
	}
	glog.V(1).Infof("read %d bytes from %s", len(data), args[0])

	result, err := c.Decode(data, params)
	if result != nil && result.Detail != nil {
		fmt.Fprint(stdout, result.Detail.String())
	}
	if err != nil {
		if errors.Is(err, common.ErrInvalidStart) {
			fmt.Fprintf(stderr, "%s is not a JPEG file: %v\n", args[0], err)
		} else {
			fmt.Fprintf(stderr, "decoding %s: %v\n", args[0], err)
		}
		return exitError
	}

	return exitOK
}
