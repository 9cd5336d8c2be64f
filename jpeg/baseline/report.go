package baseline

import (
	"fmt"
	"io"
	"strings"

	"github.com/cocosip/go-jfif/jpeg/common"
)

var densityUnitNames = map[uint8]string{
	0: "aspect ratio",
	1: "dots per inch",
	2: "dots per cm",
}

// String renders a header report of every decoded image.
func (r *Result) String() string {
	var b strings.Builder
	r.WriteReport(&b)
	return b.String()
}

// WriteReport writes the header report to w.
func (r *Result) WriteReport(w io.Writer) {
	for i, img := range r.Images {
		fmt.Fprintf(w, "Image %d\n", i)
		img.writeReport(w)
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped segments\n")
		for _, seg := range r.Skipped {
			fmt.Fprintf(w, "  %-32s offset %-8d length %d\n", common.MarkerName(seg.Marker), seg.Offset, seg.Length)
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings\n")
		for _, err := range r.Warnings {
			fmt.Fprintf(w, "  %v\n", err)
		}
	}
}

func (s *Session) writeReport(w io.Writer) {
	units, ok := densityUnitNames[s.DensityUnits]
	if !ok {
		units = fmt.Sprintf("unknown (%d)", s.DensityUnits)
	}

	fmt.Fprintf(w, "  JFIF version:  %d.%02d\n", s.Version.Major, s.Version.Minor)
	fmt.Fprintf(w, "  Density:       %d x %d %s\n", s.XDensity, s.YDensity, units)
	fmt.Fprintf(w, "  Frame:         %d x %d, %d bits per sample\n", s.Width, s.Height, s.BitsPerSample)

	fmt.Fprintf(w, "  Components:    %d\n", len(s.Components))
	for _, c := range s.Components {
		fmt.Fprintf(w, "    id %d sampling %dx%d quant table %d\n",
			c.ID, c.SampleFactorHorizontal, c.SampleFactorVertical, c.QuantTableID)
	}

	writeQuantTable(w, "Luminance quantization table", &s.LumaQuant)
	writeQuantTable(w, "Chrominance quantization table", &s.ChromaQuant)

	fmt.Fprintf(w, "  Huffman tables: %d\n", len(s.HuffmanTables))
	for _, t := range s.HuffmanTables {
		class := "DC"
		if t.Class == ClassAC {
			class = "AC"
		}
		fmt.Fprintf(w, "    %s %d: %d codes\n", class, t.Selector, t.Symbols)
	}

	fmt.Fprintf(w, "  Blocks decoded: %d\n", s.BlocksDecoded)
}

func writeQuantTable(w io.Writer, title string, table *[common.BlockSize]uint16) {
	fmt.Fprintf(w, "  %s\n", title)
	for row := 0; row < 8; row++ {
		fmt.Fprintf(w, "   ")
		for col := 0; col < 8; col++ {
			fmt.Fprintf(w, " %4d", table[row*8+col])
		}
		fmt.Fprintln(w)
	}
}
