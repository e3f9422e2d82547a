// SPDX-License-Identifier: MIT

package rates

import "errors"

var (
	// ErrUnknownInterpolation indicates an interpolation tag that is not one
	// of LINEAR_INTERPOLATION or PIECEWISE_CONSTANT.
	ErrUnknownInterpolation = errors.New("rates: unknown interpolation type")

	// ErrNonFinite indicates a NaN or ±Inf age or rate.
	ErrNonFinite = errors.New("rates: NaN or Inf encountered")
)
