package fibar

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// CalibrationStats reports the diagnostic statistics computed while
// loading a calibration file (spec §6), following the two-pass
// algorithm from the original C++ readScaleFile: a first pass computes
// the mean total event count per pixel, a second pass derives each
// pixel's scale and accumulates mean/stddev/harmonic-mean of the
// resulting scale factors.
type CalibrationStats struct {
	Count        int
	MeanEvents   float64
	MeanScale    float64
	StddevScale  float64
	HarmonicMean float64
}

// LoadCalibration reads a whitespace-separated ASCII calibration file
// (two integers "n_on n_off" per pixel, row-major, width*height pairs)
// and sets state[i].Scale for every pixel, per spec §6. It returns the
// diagnostic statistics the original implementation printed to stdout.
func LoadCalibration(r *Reconstructor, src io.Reader) (CalibrationStats, error) {
	nPix := r.width * r.height

	firstPass := make([]uint32, 0, nPix*2)
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)
	for sc.Scan() && len(firstPass) < nPix*2 {
		var v uint32
		if _, err := fmt.Sscan(sc.Text(), &v); err != nil {
			return CalibrationStats{}, &ConfigurationError{Reason: "calibration file contains non-integer token: " + err.Error()}
		}
		firstPass = append(firstPass, v)
	}
	if err := sc.Err(); err != nil {
		return CalibrationStats{}, &ConfigurationError{Reason: "cannot read calibration file: " + err.Error()}
	}
	if len(firstPass) < nPix*2 {
		return CalibrationStats{}, &ConfigurationError{Reason: "calibration file has fewer than 2*width*height entries"}
	}

	var sum uint64
	for _, v := range firstPass {
		sum += uint64(v)
	}
	meanTotal := float64(sum) / float64(nPix)

	var ss, ss2, sumInv float64
	for i := 0; i < nPix; i++ {
		nOn, nOff := firstPass[2*i], firstPass[2*i+1]
		total := float64(nOn) + float64(nOff)
		c := meanTotal / total
		r.state[i].Scale = float32(c)
		ss += c
		ss2 += c * c
		sumInv += 1.0 / c
	}
	ss /= float64(nPix)
	ss2 /= float64(nPix)
	stddev := math.Sqrt(ss2 - ss*ss)

	return CalibrationStats{
		Count:        nPix,
		MeanEvents:   meanTotal,
		MeanScale:    ss,
		StddevScale:  stddev,
		HarmonicMean: float64(nPix) / sumInv,
	}, nil
}
