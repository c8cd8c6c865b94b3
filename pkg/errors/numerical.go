package errors

import (
	"fmt"
	"math"
)

// CheckFinite はvaluesにNaNまたはInfが含まれていないか検査します。
// 最初に見つかった非有限値の位置をValueErrorとして返します。
func CheckFinite(operation, name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(operation, fmt.Sprintf("%s: non-finite value %v at row %d", name, v, i))
		}
	}
	return nil
}

// IsIntegral はvが整数値かどうかを返します。
func IsIntegral(v float64) bool {
	return v == math.Trunc(v)
}
