package sstv

import "fmt"

// Mode identifies an SSTV transmission format, plus the two control
// tags used by the state machine while it has not yet locked onto a
// concrete format.
type Mode int

const (
	ModeNone Mode = iota
	ModeVisFound

	ModeRobot36
	ModeRobot72
	ModeMartin1
	ModeMartin2
	ModeWrasseSC2180
	ModeScottie1
	ModeScottie2
	ModeScottieDX
	ModeP3
	ModeP5
	ModeP7
	ModePD50
	ModePD90
	ModePD120
	ModePD160
	ModePD180
	ModePD240
	ModePD290
)

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

var modeNames = map[Mode]string{
	ModeNone:         "None",
	ModeVisFound:     "VisFound",
	ModeRobot36:      "Robot36",
	ModeRobot72:      "Robot72",
	ModeMartin1:      "Martin1",
	ModeMartin2:      "Martin2",
	ModeWrasseSC2180: "WrasseSc2-180",
	ModeScottie1:     "Scottie1",
	ModeScottie2:     "Scottie2",
	ModeScottieDX:    "ScottieDx",
	ModeP3:           "P3",
	ModeP5:           "P5",
	ModeP7:           "P7",
	ModePD50:         "Pd50",
	ModePD90:         "Pd90",
	ModePD120:        "Pd120",
	ModePD160:        "Pd160",
	ModePD180:        "Pd180",
	ModePD240:        "Pd240",
	ModePD290:        "Pd290",
}

// ColorFamily groups modes that share a line layout and are decoded
// or synthesized by the same family of functions.
type ColorFamily int

const (
	// FamilyRGBSeq: one pixel row per line, three channels in ScanOrder,
	// each with its own sync/porch/separator timing (Scottie, Martin,
	// Wrasse, P3/P5/P7).
	FamilyRGBSeq ColorFamily = iota
	// FamilyRobot: YCrCb, Robot36 (two-row, alternating chroma) and
	// Robot72 (one-row, full chroma every line).
	FamilyRobot
	// FamilyPD: YCrCb, paired rows, four channels per line-pair
	// (Y-odd, R-Y shared, B-Y shared, Y-even).
	FamilyPD
)

// rgbLayout distinguishes the three distinct per-line tone sequences
// within FamilyRGBSeq, grounded on the original encoder's per-mode
// files: martin.rs/pasokon.rs share one shape, warsse_sc2_180.rs has
// no separator tone at all, and schottie.rs splits its sync+porch
// mid-line with a one-time leading sync before the image's first row.
type rgbLayout int

const (
	// layoutStandard: sync, porch, (scan, septr) x3 -- Martin, Pasokon
	// (P3/P5/P7). The trailing septr doubles as what the mode table
	// calls "porch" on the next line's lead-in; the value is identical
	// in both roles in every mode that uses this layout.
	layoutStandard rgbLayout = iota
	// layoutNoSeptr: sync, porch, scan, scan, scan -- Wrasse SC2-180.
	layoutNoSeptr
	// layoutScottie: one-time leading sync before row 0, then per row
	// septr, scan, septr, scan, sync, porch, scan -- Scottie family.
	layoutScottie
)

// ModeSpec is the complete, static description of one SSTV
// transmission format: its pixel grid, color model and the per-line
// timing budget needed to both decode and synthesize it.
type ModeSpec struct {
	Mode   Mode
	VIS    uint8
	Width  int
	Height int
	Family ColorFamily

	// FamilyRGBSeq fields.
	Layout    rgbLayout
	ScanOrder [3]int // output channel (0=R,1=G,2=B) for each scan slot
	PixelMs   float64
	SyncMs    float64
	SyncFreq  float64
	PorchMs   float64
	PorchFreq float64
	SeptrMs   float64
	SeptrFreq float64
	LeadInMs  float64 // Scottie only: one-time sync before the image's first row
	LeadInHz  float64

	// FamilyRobot fields. Robot36 paces a row pair as sync+porch+Y(odd),
	// septr+chromaPorch+R-Y(avg), sync+porch+Y(even), septr+chromaPorch+
	// B-Y(avg); Robot72 paces one row as sync+porch+Y, septr+chromaPorch+
	// R-Y, septr+chromaPorch+B-Y (no averaging, no pairing).
	YPixelMs      float64
	ChromaPixelMs float64
	ChromaPorchMs float64
	TwoLineRobot  bool // Robot36: paired rows with averaged, alternating chroma; Robot72: single row, full chroma

	// FamilyPD fields.
	PDPixelMs float64 // per-pixel time, shared by all four channels
}

// LineTimeMs is the total duration of one decoded/synthesized line
// (or, for FamilyPD, one row-pair), in milliseconds.
func (m *ModeSpec) LineTimeMs() float64 {
	switch m.Family {
	case FamilyRGBSeq:
		scans := 3 * m.PixelMs * float64(m.Width)
		switch m.Layout {
		case layoutStandard:
			return m.SyncMs + m.PorchMs + scans + 3*m.SeptrMs
		case layoutNoSeptr:
			return m.SyncMs + m.PorchMs + scans
		case layoutScottie:
			return m.SyncMs + m.PorchMs + scans + 2*m.SeptrMs
		}
		return scans
	case FamilyRobot:
		ySeg := m.SyncMs + m.PorchMs + m.YPixelMs*float64(m.Width)
		chromaSeg := m.SeptrMs + m.ChromaPorchMs + m.ChromaPixelMs*float64(m.Width)
		if m.TwoLineRobot {
			return 2*ySeg + 2*chromaSeg
		}
		return ySeg + 2*chromaSeg
	case FamilyPD:
		return m.SyncMs + m.PorchMs + 4*m.PDPixelMs*float64(m.Width)
	}
	return 0
}

// LineSamples returns the number of input samples that one line (or,
// for FamilyPD, one row-pair) occupies at sample rate fs.
func (m *ModeSpec) LineSamples(fs float64) int {
	return int(m.LineTimeMs() / 1000 * fs)
}

// RowsPerLine is 2 for the PD family and paired-row Robot36 (a
// line-pair produces two image rows) and 1 for everything else.
func (m *ModeSpec) RowsPerLine() int {
	if m.Family == FamilyPD {
		return 2
	}
	if m.Family == FamilyRobot && m.TwoLineRobot {
		return 2
	}
	return 1
}

// NumLines is the number of line (or line-pair) decode iterations
// needed to fill the raster.
func (m *ModeSpec) NumLines() int {
	return m.Height / m.RowsPerLine()
}

const (
	headerLeaderMs   = 300.0
	headerBreakMs    = 10.0
	visBitMs         = 30.0
	visLeaderFreq    = 1900.0
	visBreakFreq     = 1200.0
	visOneFreq       = 1100.0
	visZeroFreq      = 1300.0
	leaderTolerance  = 50.0
	visDataThreshold = 1200.0
)

// modeTable is the authoritative VIS-code-to-format table. Both the
// decoder and the encoder draw from it so the two sides agree
// bit-exactly.
var modeTable = []ModeSpec{
	{
		// Separator tone alternates 1500Hz (after the odd/Y-R-Y half)
		// and 2300Hz (after the even/Y-B-Y half); decode only needs the
		// shared duration since both are discarded.
		Mode: ModeRobot36, VIS: 8, Width: 320, Height: 240, Family: FamilyRobot,
		SyncMs: 9, SyncFreq: 1200, PorchMs: 3, PorchFreq: 1500,
		SeptrMs: 4.5, SeptrFreq: 1500, ChromaPorchMs: 1.5,
		YPixelMs: 88.0 / 320, ChromaPixelMs: 44.0 / 320, TwoLineRobot: true,
	},
	{
		Mode: ModeRobot72, VIS: 12, Width: 320, Height: 240, Family: FamilyRobot,
		SyncMs: 9, SyncFreq: 1200, PorchMs: 3, PorchFreq: 1500,
		SeptrMs: 4.5, SeptrFreq: 1500, ChromaPorchMs: 1.5,
		YPixelMs: 138.0 / 320, ChromaPixelMs: 69.0 / 320, TwoLineRobot: false,
	},
	{
		Mode: ModeMartin2, VIS: 40, Width: 320, Height: 256, Family: FamilyRGBSeq,
		Layout: layoutStandard, ScanOrder: [3]int{1, 2, 0}, PixelMs: 0.2288,
		SyncMs: 4.862, SyncFreq: 1200, PorchMs: 0.572, PorchFreq: 1500,
		SeptrMs: 0.572, SeptrFreq: 1500,
	},
	{
		Mode: ModeMartin1, VIS: 44, Width: 320, Height: 256, Family: FamilyRGBSeq,
		Layout: layoutStandard, ScanOrder: [3]int{1, 2, 0}, PixelMs: 0.4576,
		SyncMs: 4.862, SyncFreq: 1200, PorchMs: 0.572, PorchFreq: 1500,
		SeptrMs: 0.572, SeptrFreq: 1500,
	},
	{
		Mode: ModeWrasseSC2180, VIS: 55, Width: 320, Height: 256, Family: FamilyRGBSeq,
		Layout: layoutNoSeptr, ScanOrder: [3]int{0, 1, 2}, PixelMs: 0.7344,
		SyncMs: 5.5225, SyncFreq: 1200, PorchMs: 0.5, PorchFreq: 1500,
	},
	{
		Mode: ModeScottie2, VIS: 56, Width: 320, Height: 256, Family: FamilyRGBSeq,
		Layout: layoutScottie, ScanOrder: [3]int{1, 2, 0}, PixelMs: 0.2752,
		SyncMs: 9.0, SyncFreq: 1200, PorchMs: 1.5, PorchFreq: 1500,
		SeptrMs: 1.5, SeptrFreq: 1500, LeadInMs: 9.0, LeadInHz: 1200,
	},
	{
		Mode: ModeScottie1, VIS: 60, Width: 320, Height: 256, Family: FamilyRGBSeq,
		Layout: layoutScottie, ScanOrder: [3]int{1, 2, 0}, PixelMs: 0.4320,
		SyncMs: 9.0, SyncFreq: 1200, PorchMs: 1.5, PorchFreq: 1500,
		SeptrMs: 1.5, SeptrFreq: 1500, LeadInMs: 9.0, LeadInHz: 1200,
	},
	{
		Mode: ModeScottieDX, VIS: 76, Width: 320, Height: 256, Family: FamilyRGBSeq,
		Layout: layoutScottie, ScanOrder: [3]int{1, 2, 0}, PixelMs: 1.08,
		SyncMs: 9.0, SyncFreq: 1200, PorchMs: 1.5, PorchFreq: 1500,
		SeptrMs: 1.5, SeptrFreq: 1500, LeadInMs: 9.0, LeadInHz: 1200,
	},
	{
		Mode: ModePD50, VIS: 93, Width: 320, Height: 256, Family: FamilyPD,
		SyncMs: 20, SyncFreq: 1200, PorchMs: 2.08, PorchFreq: 1500,
		PDPixelMs: 91.52 / 320,
	},
	{
		Mode: ModePD290, VIS: 94, Width: 800, Height: 616, Family: FamilyPD,
		SyncMs: 20, SyncFreq: 1200, PorchMs: 2.08, PorchFreq: 1500,
		PDPixelMs: 228.8 / 800,
	},
	{
		Mode: ModePD120, VIS: 95, Width: 640, Height: 496, Family: FamilyPD,
		SyncMs: 20, SyncFreq: 1200, PorchMs: 2.08, PorchFreq: 1500,
		PDPixelMs: 121.6 / 640,
	},
	{
		Mode: ModePD180, VIS: 96, Width: 512, Height: 400, Family: FamilyPD,
		SyncMs: 20, SyncFreq: 1200, PorchMs: 2.08, PorchFreq: 1500,
		PDPixelMs: 183.04 / 512,
	},
	{
		Mode: ModePD240, VIS: 97, Width: 640, Height: 496, Family: FamilyPD,
		SyncMs: 20, SyncFreq: 1200, PorchMs: 2.08, PorchFreq: 1500,
		PDPixelMs: 244.48 / 640,
	},
	{
		Mode: ModePD160, VIS: 98, Width: 640, Height: 496, Family: FamilyPD,
		SyncMs: 20, SyncFreq: 1200, PorchMs: 2.08, PorchFreq: 1500,
		PDPixelMs: 195.584 / 640,
	},
	{
		Mode: ModePD90, VIS: 99, Width: 320, Height: 256, Family: FamilyPD,
		SyncMs: 20, SyncFreq: 1200, PorchMs: 2.08, PorchFreq: 1500,
		PDPixelMs: 170.24 / 320,
	},
	{
		Mode: ModeP3, VIS: 113, Width: 640, Height: 496, Family: FamilyRGBSeq,
		Layout: layoutStandard, ScanOrder: [3]int{0, 1, 2}, PixelMs: 0.2083,
		SyncMs: 5.208, SyncFreq: 1200, PorchMs: 1.042, PorchFreq: 1500,
		SeptrMs: 1.042, SeptrFreq: 1500,
	},
	{
		Mode: ModeP5, VIS: 114, Width: 640, Height: 496, Family: FamilyRGBSeq,
		Layout: layoutStandard, ScanOrder: [3]int{0, 1, 2}, PixelMs: 0.3125,
		SyncMs: 7.813, SyncFreq: 1200, PorchMs: 1.563, PorchFreq: 1500,
		SeptrMs: 1.563, SeptrFreq: 1500,
	},
	{
		Mode: ModeP7, VIS: 115, Width: 640, Height: 496, Family: FamilyRGBSeq,
		Layout: layoutStandard, ScanOrder: [3]int{0, 1, 2}, PixelMs: 0.4167,
		SyncMs: 10.417, SyncFreq: 1200, PorchMs: 2.083, PorchFreq: 1500,
		SeptrMs: 2.083, SeptrFreq: 1500,
	},
}

var (
	specByVIS  = map[uint8]*ModeSpec{}
	specByMode = map[Mode]*ModeSpec{}
)

func init() {
	for i := range modeTable {
		s := &modeTable[i]
		specByVIS[s.VIS] = s
		specByMode[s.Mode] = s
	}
}

// LookupVIS returns the ModeSpec for a decoded 7-bit VIS code, or nil
// if the code is not in the table.
func LookupVIS(code uint8) *ModeSpec {
	return specByVIS[code]
}

// LookupMode returns the ModeSpec for a concrete Mode, or nil for the
// None/VisFound control tags.
func LookupMode(m Mode) *ModeSpec {
	return specByMode[m]
}
