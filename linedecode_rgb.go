package sstv

// decodeRGBLine decodes one line of a FamilyRGBSeq mode (Scottie,
// Martin, Wrasse SC2-180, Pasokon P3/P5/P7): three sequential scans,
// arranged per spec.Layout, each converted to one output channel via
// spec.ScanOrder.
func decodeRGBLine(spec *ModeSpec, window []float64, fs float64, pic *Picture, row int) {
	samplesFor := func(ms float64) int {
		return int(ms / 1000 * fs)
	}
	scanLen := samplesFor(spec.PixelMs * float64(spec.Width))

	var bounds [3][2]int // [start,end) per scan slot, in window-sample units
	switch spec.Layout {
	case layoutNoSeptr:
		off := samplesFor(spec.SyncMs + spec.PorchMs)
		bounds[0] = [2]int{off, off + scanLen}
		bounds[1] = [2]int{bounds[0][1], bounds[0][1] + scanLen}
		bounds[2] = [2]int{bounds[1][1], len(window)}
	case layoutScottie:
		off := samplesFor(spec.SeptrMs)
		bounds[0] = [2]int{off, off + scanLen}
		off = bounds[0][1] + samplesFor(spec.SeptrMs)
		bounds[1] = [2]int{off, off + scanLen}
		off = bounds[1][1] + samplesFor(spec.SyncMs+spec.PorchMs)
		bounds[2] = [2]int{off, len(window)}
	default: // layoutStandard
		off := samplesFor(spec.SyncMs + spec.PorchMs)
		bounds[0] = [2]int{off, off + scanLen}
		off = bounds[0][1] + samplesFor(spec.SeptrMs)
		bounds[1] = [2]int{off, off + scanLen}
		off = bounds[1][1] + samplesFor(spec.SeptrMs)
		bounds[2] = [2]int{off, off + scanLen}
	}

	for slot := 0; slot < 3; slot++ {
		start, end := bounds[slot][0], bounds[slot][1]
		if start < 0 {
			start = 0
		}
		if end > len(window) {
			end = len(window)
		}
		if end <= start {
			continue
		}
		seg := window[start:end]
		writeScanToChannel(seg, spec.Width, pic, row, spec.ScanOrder[slot])
	}
}

// writeScanToChannel partitions seg into width equal pixel slots,
// converts each to an 8-bit value and writes it into the given output
// channel (0=R,1=G,2=B) of the picture row.
func writeScanToChannel(seg []float64, width int, pic *Picture, row, channel int) {
	if width <= 0 {
		return
	}
	perPixel := len(seg) / width
	if perPixel == 0 {
		return
	}
	for x := 0; x < width; x++ {
		s := x * perPixel
		e := s + perPixel
		if x == width-1 {
			e = len(seg)
		}
		v := freqToChannel(meanFreq(seg[s:e]))
		switch channel {
		case 0:
			pic.Pixels[row][x].R = v
		case 1:
			pic.Pixels[row][x].G = v
		case 2:
			pic.Pixels[row][x].B = v
		}
	}
}
