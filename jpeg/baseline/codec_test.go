package baseline

import (
	"errors"
	"strings"
	"testing"

	"github.com/cocosip/go-jfif/codec"
	"github.com/cocosip/go-jfif/jpeg/common"
)

func TestBaselineCodecInterface(t *testing.T) {
	c := NewCodec()

	if c.Name() != "jpeg-baseline" {
		t.Errorf("Name() = %q, want jpeg-baseline", c.Name())
	}
	if c.UID() != "1.2.840.10008.1.2.4.50" {
		t.Errorf("UID() = %q, want 1.2.840.10008.1.2.4.50", c.UID())
	}
	if _, ok := c.GetDefaultParameters().(*DecodeParameters); !ok {
		t.Errorf("GetDefaultParameters() = %T, want *DecodeParameters", c.GetDefaultParameters())
	}
}

func TestBaselineCodecRegistered(t *testing.T) {
	for _, key := range []string{"jpeg-baseline", "1.2.840.10008.1.2.4.50"} {
		c, err := codec.Get(key)
		if err != nil {
			t.Fatalf("codec.Get(%q) failed: %v", key, err)
		}
		if _, ok := c.(*Codec); !ok {
			t.Errorf("codec.Get(%q) = %T, want *Codec", key, c)
		}
	}
}

func TestBaselineCodecDecode(t *testing.T) {
	data := grayStream([]byte{0xA9, 0xBB}).EOI().Bytes()
	data = append(data, grayStream([]byte{0xA9, 0xBB}).EOI().Bytes()...)

	c := NewCodec()
	params := c.GetDefaultParameters()
	params.SetParameter(ParamDCPredictor, "absolute")

	result, err := c.Decode(data, params)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if result.Width != 8 || result.Height != 8 || result.Components != 1 || result.BitDepth != 8 {
		t.Errorf("summary = %dx%d, %d components, %d-bit", result.Width, result.Height, result.Components, result.BitDepth)
	}
	if result.Images != 2 || result.Blocks != 2 {
		t.Errorf("Images = %d, Blocks = %d, want 2 and 2", result.Images, result.Blocks)
	}
	if result.Detail == nil || !strings.Contains(result.Detail.String(), "Image 1") {
		t.Errorf("Detail does not report both images")
	}
}

func TestBaselineCodecDecodeErrors(t *testing.T) {
	c := NewCodec()

	result, err := c.Decode([]byte{0x00, 0x01}, nil)
	if !errors.Is(err, common.ErrInvalidStart) {
		t.Errorf("Decode error = %v, want %v", err, common.ErrInvalidStart)
	}
	if result == nil || result.Images != 0 {
		t.Errorf("Decode result = %+v, want empty summary", result)
	}

	params := c.GetDefaultParameters()
	params.SetParameter(ParamDCPredictor, "median")
	result, err = c.Decode(grayStream(nil).EOI().Bytes(), params)
	if !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("Decode error = %v, want %v", err, codec.ErrInvalidParameter)
	}
	if result != nil {
		t.Errorf("Decode result = %+v, want nil", result)
	}
}
