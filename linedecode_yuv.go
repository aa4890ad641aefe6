package sstv

// decodeRobotLine decodes one Robot36 row pair or one Robot72 row,
// reconstructing RGB from Y/R-Y/B-Y via the Dayton-paper formulas.
func decodeRobotLine(spec *ModeSpec, window []float64, fs float64, pic *Picture, row int) {
	samplesFor := func(ms float64) int { return int(ms / 1000 * fs) }
	ySeg := samplesFor(spec.YPixelMs * float64(spec.Width))
	chromaSeg := samplesFor(spec.ChromaPixelMs * float64(spec.Width))

	if spec.TwoLineRobot {
		off := samplesFor(spec.SyncMs + spec.PorchMs)
		yOdd := sliceClamp(window, off, off+ySeg)

		off = off + ySeg + samplesFor(spec.SeptrMs+spec.ChromaPorchMs)
		ry := sliceClamp(window, off, off+chromaSeg)

		off = off + chromaSeg + samplesFor(spec.SyncMs+spec.PorchMs)
		yEven := sliceClamp(window, off, off+ySeg)

		off = off + ySeg + samplesFor(spec.SeptrMs+spec.ChromaPorchMs)
		by := sliceClamp(window, off, len(window))

		writeYUVRow(yOdd, ry, by, spec.Width, pic, row)
		writeYUVRow(yEven, ry, by, spec.Width, pic, row+1)
		return
	}

	off := samplesFor(spec.SyncMs + spec.PorchMs)
	y := sliceClamp(window, off, off+ySeg)

	off = off + ySeg + samplesFor(spec.SeptrMs+spec.ChromaPorchMs)
	ry := sliceClamp(window, off, off+chromaSeg)

	off = off + chromaSeg + samplesFor(spec.SeptrMs+spec.ChromaPorchMs)
	by := sliceClamp(window, off, len(window))

	writeYUVRow(y, ry, by, spec.Width, pic, row)
}

// decodePDLine decodes one PD-family row pair: sync, porch, then four
// equal-duration channels (Y-odd, R-Y shared, B-Y shared, Y-even).
func decodePDLine(spec *ModeSpec, window []float64, fs float64, pic *Picture, rowPair int) {
	samplesFor := func(ms float64) int { return int(ms / 1000 * fs) }
	chanLen := samplesFor(spec.PDPixelMs * float64(spec.Width))

	off := samplesFor(spec.SyncMs + spec.PorchMs)
	yOdd := sliceClamp(window, off, off+chanLen)
	off += chanLen
	ry := sliceClamp(window, off, off+chanLen)
	off += chanLen
	by := sliceClamp(window, off, off+chanLen)
	off += chanLen
	yEven := sliceClamp(window, off, len(window))

	writeYUVRow(yOdd, ry, by, spec.Width, pic, rowPair)
	writeYUVRow(yEven, ry, by, spec.Width, pic, rowPair+1)
}

// writeYUVRow partitions ySeg/rySeg/bySeg into width pixel slots each
// and reconstructs an RGB pixel per slot.
func writeYUVRow(ySeg, rySeg, bySeg []float64, width int, pic *Picture, row int) {
	if width <= 0 || row < 0 || row >= pic.Height {
		return
	}
	yPer := segLen(ySeg, width)
	ryPer := segLen(rySeg, width)
	byPer := segLen(bySeg, width)
	if yPer == 0 || ryPer == 0 || byPer == 0 {
		return
	}
	for x := 0; x < width; x++ {
		y := freqToChannel(meanFreq(pixelSlot(ySeg, x, width, yPer)))
		ry := freqToChannel(meanFreq(pixelSlot(rySeg, x, width, ryPer)))
		by := freqToChannel(meanFreq(pixelSlot(bySeg, x, width, byPer)))
		pic.Pixels[row][x] = ycrcbToRGB(y, ry, by)
	}
}

func segLen(seg []float64, width int) int {
	if width <= 0 {
		return 0
	}
	return len(seg) / width
}

func pixelSlot(seg []float64, x, width, perPixel int) []float64 {
	s := x * perPixel
	e := s + perPixel
	if x == width-1 {
		e = len(seg)
	}
	if s < 0 {
		s = 0
	}
	if e > len(seg) {
		e = len(seg)
	}
	if e <= s {
		return nil
	}
	return seg[s:e]
}

// sliceClamp returns window[start:end], clamped to window's bounds.
func sliceClamp(window []float64, start, end int) []float64 {
	if start < 0 {
		start = 0
	}
	if end > len(window) {
		end = len(window)
	}
	if end <= start {
		return nil
	}
	return window[start:end]
}
