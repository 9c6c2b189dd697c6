package reports

// SumBy folds a numeric field over a collection.
func SumBy[T any](items []T, field func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += field(item)
	}
	return total
}

// LineTotal computes a sale line amount from quantity and unit price.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
