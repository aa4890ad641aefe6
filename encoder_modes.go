package sstv

// genScan emits one color scan: width samples of duration pixelMs
// each, frequency-mapped from the given channel values.
func genScan(osc *Oscillator, pixelMs float64, values []uint8) []int16 {
	var out []int16
	for _, v := range values {
		out = append(out, osc.GenerateColor(pixelMs, v)...)
	}
	return out
}

func rowChannel(pic *Picture, row, channel int) []uint8 {
	out := make([]uint8, pic.Width)
	for x := 0; x < pic.Width; x++ {
		p := pic.Pixels[row][x]
		switch channel {
		case 0:
			out[x] = p.R
		case 1:
			out[x] = p.G
		default:
			out[x] = p.B
		}
	}
	return out
}

// encodeRGBLines synthesizes a FamilyRGBSeq transmission (Scottie,
// Martin, Wrasse SC2-180, Pasokon), per spec.Layout.
func encodeRGBLines(spec *ModeSpec, pic *Picture, osc *Oscillator) []int16 {
	var out []int16
	if spec.Layout == layoutScottie {
		out = append(out, osc.Generate(spec.LeadInMs, spec.LeadInHz)...)
	}

	for y := 0; y < spec.Height; y++ {
		ch0 := rowChannel(pic, y, spec.ScanOrder[0])
		ch1 := rowChannel(pic, y, spec.ScanOrder[1])
		ch2 := rowChannel(pic, y, spec.ScanOrder[2])

		switch spec.Layout {
		case layoutNoSeptr:
			out = append(out, osc.Generate(spec.SyncMs, spec.SyncFreq)...)
			out = append(out, osc.Generate(spec.PorchMs, spec.PorchFreq)...)
			out = append(out, genScan(osc, spec.PixelMs, ch0)...)
			out = append(out, genScan(osc, spec.PixelMs, ch1)...)
			out = append(out, genScan(osc, spec.PixelMs, ch2)...)
		case layoutScottie:
			out = append(out, osc.Generate(spec.SeptrMs, spec.SeptrFreq)...)
			out = append(out, genScan(osc, spec.PixelMs, ch0)...)
			out = append(out, osc.Generate(spec.SeptrMs, spec.SeptrFreq)...)
			out = append(out, genScan(osc, spec.PixelMs, ch1)...)
			out = append(out, osc.Generate(spec.SyncMs, spec.SyncFreq)...)
			out = append(out, osc.Generate(spec.PorchMs, spec.PorchFreq)...)
			out = append(out, genScan(osc, spec.PixelMs, ch2)...)
		default: // layoutStandard
			out = append(out, osc.Generate(spec.SyncMs, spec.SyncFreq)...)
			out = append(out, osc.Generate(spec.PorchMs, spec.PorchFreq)...)
			out = append(out, genScan(osc, spec.PixelMs, ch0)...)
			out = append(out, osc.Generate(spec.SeptrMs, spec.SeptrFreq)...)
			out = append(out, genScan(osc, spec.PixelMs, ch1)...)
			out = append(out, osc.Generate(spec.SeptrMs, spec.SeptrFreq)...)
			out = append(out, genScan(osc, spec.PixelMs, ch2)...)
			out = append(out, osc.Generate(spec.SeptrMs, spec.SeptrFreq)...)
		}
	}
	return out
}

func avgChannel(a, b []uint8) []uint8 {
	out := make([]uint8, len(a))
	for i := range a {
		out[i] = uint8((uint16(a[i]) + uint16(b[i])) / 2)
	}
	return out
}

func ycrcbRow(pic *Picture, row int) (y, ry, by []uint8) {
	y = make([]uint8, pic.Width)
	ry = make([]uint8, pic.Width)
	by = make([]uint8, pic.Width)
	for x := 0; x < pic.Width; x++ {
		yy, r, b := rgbToYCrCb(pic.Pixels[row][x])
		y[x], ry[x], by[x] = yy, r, b
	}
	return
}

// encodeRobotLines synthesizes Robot36 (paired rows, averaged
// alternating chroma) or Robot72 (single row, full chroma per line).
func encodeRobotLines(spec *ModeSpec, pic *Picture, osc *Oscillator) []int16 {
	var out []int16

	if spec.TwoLineRobot {
		for y := 0; y < spec.Height; y += 2 {
			yOdd, ryOdd, byOdd := ycrcbRow(pic, y)
			yEven, ryEven, byEven := ycrcbRow(pic, y+1)
			ry := avgChannel(ryOdd, ryEven)
			by := avgChannel(byOdd, byEven)

			out = append(out, osc.Generate(spec.SyncMs, spec.SyncFreq)...)
			out = append(out, osc.Generate(spec.PorchMs, spec.PorchFreq)...)
			out = append(out, genScan(osc, spec.YPixelMs, yOdd)...)

			out = append(out, osc.Generate(spec.SeptrMs, 1500)...)
			out = append(out, osc.Generate(spec.ChromaPorchMs, 1900)...)
			out = append(out, genScan(osc, spec.ChromaPixelMs, ry)...)

			out = append(out, osc.Generate(spec.SyncMs, spec.SyncFreq)...)
			out = append(out, osc.Generate(spec.PorchMs, spec.PorchFreq)...)
			out = append(out, genScan(osc, spec.YPixelMs, yEven)...)

			out = append(out, osc.Generate(spec.SeptrMs, 2300)...)
			out = append(out, osc.Generate(spec.ChromaPorchMs, 1500)...)
			out = append(out, genScan(osc, spec.ChromaPixelMs, by)...)
		}
		return out
	}

	for y := 0; y < spec.Height; y++ {
		yy, ry, by := ycrcbRow(pic, y)
		out = append(out, osc.Generate(spec.SyncMs, spec.SyncFreq)...)
		out = append(out, osc.Generate(spec.PorchMs, spec.PorchFreq)...)
		out = append(out, genScan(osc, spec.YPixelMs, yy)...)

		out = append(out, osc.Generate(spec.SeptrMs, 1500)...)
		out = append(out, osc.Generate(spec.ChromaPorchMs, 1900)...)
		out = append(out, genScan(osc, spec.ChromaPixelMs, ry)...)

		out = append(out, osc.Generate(spec.SeptrMs, 2300)...)
		out = append(out, osc.Generate(spec.ChromaPorchMs, 1500)...)
		out = append(out, genScan(osc, spec.ChromaPixelMs, by)...)
	}
	return out
}

// encodePDLines synthesizes any PD-family mode: sync, porch, then
// Y-odd, R-Y (averaged), B-Y (averaged), Y-even.
func encodePDLines(spec *ModeSpec, pic *Picture, osc *Oscillator) []int16 {
	var out []int16
	for y := 0; y < spec.Height; y += 2 {
		yOdd, ryOdd, byOdd := ycrcbRow(pic, y)
		yEven, ryEven, byEven := ycrcbRow(pic, y+1)
		ry := avgChannel(ryOdd, ryEven)
		by := avgChannel(byOdd, byEven)

		out = append(out, osc.Generate(spec.SyncMs, spec.SyncFreq)...)
		out = append(out, osc.Generate(spec.PorchMs, spec.PorchFreq)...)
		out = append(out, genScan(osc, spec.PDPixelMs, yOdd)...)
		out = append(out, genScan(osc, spec.PDPixelMs, ry)...)
		out = append(out, genScan(osc, spec.PDPixelMs, by)...)
		out = append(out, genScan(osc, spec.PDPixelMs, yEven)...)
	}
	return out
}
