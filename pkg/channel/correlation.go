// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SetTransmitPrecoding installs the transmit-side covariance matrix of the
// Kronecker correlation model. The matrix must be square and match the
// transmit antenna count; nil removes the correlation. Matrices are expected
// Hermitian positive-definite for physical validity, which is left to the
// caller to ensure.
func (c *MultipathFadingChannel) SetTransmitPrecoding(precoding *mat.CDense) error {
	if precoding != nil {
		rows, cols := precoding.Dims()
		if rows != cols {
			return fmt.Errorf("transmit precoding matrix must be square, got %dx%d", rows, cols)
		}
		if rows != c.numTxAntennas {
			return fmt.Errorf("transmit precoding matrix is %dx%d, channel has %d transmit antenna(s)",
				rows, cols, c.numTxAntennas)
		}
	}
	c.txPrecoding = precoding
	return nil
}

// TransmitPrecoding returns the installed transmit covariance matrix, nil if unset
func (c *MultipathFadingChannel) TransmitPrecoding() *mat.CDense { return c.txPrecoding }

// SetReceivePostcoding installs the receive-side covariance matrix of the
// Kronecker correlation model, with the same shape rules as the transmit side
func (c *MultipathFadingChannel) SetReceivePostcoding(postcoding *mat.CDense) error {
	if postcoding != nil {
		rows, cols := postcoding.Dims()
		if rows != cols {
			return fmt.Errorf("receive postcoding matrix must be square, got %dx%d", rows, cols)
		}
		if rows != c.numRxAntennas {
			return fmt.Errorf("receive postcoding matrix is %dx%d, channel has %d receive antenna(s)",
				rows, cols, c.numRxAntennas)
		}
	}
	c.rxPostcoding = postcoding
	return nil
}

// ReceivePostcoding returns the installed receive covariance matrix, nil if unset
func (c *MultipathFadingChannel) ReceivePostcoding() *mat.CDense { return c.rxPostcoding }

// applyCorrelation imposes the Kronecker antenna correlation on an
// uncorrelated impulse response: at every time/delay instant the antenna
// gain matrix H becomes R * H * T'. A missing matrix acts as the identity.
func (c *MultipathFadingChannel) applyCorrelation(h *ImpulseResponse) {
	if c.txPrecoding == nil && c.rxPostcoding == nil {
		return
	}
	numSamples, _, _, numTaps := h.Dims()
	for n := 0; n < numSamples; n++ {
		for tap := 0; tap < numTaps; tap++ {
			gains := h.antennaGains(n, tap)

			if c.rxPostcoding != nil {
				gains = mulCDense(c.rxPostcoding, gains)
			}
			if c.txPrecoding != nil {
				gains = mulCDenseTransposed(gains, c.txPrecoding)
			}
			h.setAntennaGains(n, tap, gains)
		}
	}
}

// mulCDense returns the product a*b
func mulCDense(a, b *mat.CDense) *mat.CDense {
	aRows, aCols := a.Dims()
	_, bCols := b.Dims()
	product := mat.NewCDense(aRows, bCols, nil)
	for i := 0; i < aRows; i++ {
		for j := 0; j < bCols; j++ {
			var sum complex128
			for k := 0; k < aCols; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			product.Set(i, j, sum)
		}
	}
	return product
}

// mulCDenseTransposed returns the product a*b', transposing without conjugation
func mulCDenseTransposed(a, b *mat.CDense) *mat.CDense {
	aRows, aCols := a.Dims()
	bRows, _ := b.Dims()
	product := mat.NewCDense(aRows, bRows, nil)
	for i := 0; i < aRows; i++ {
		for j := 0; j < bRows; j++ {
			var sum complex128
			for k := 0; k < aCols; k++ {
				sum += a.At(i, k) * b.At(j, k)
			}
			product.Set(i, j, sum)
		}
	}
	return product
}
