// Package overflow provides checked integer arithmetic: each operation
// reports ok=false instead of wrapping.
package overflow

type Integer interface {
	~int32 | ~int64
}

func Add[T Integer](a, b T) (T, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func Sub[T Integer](a, b T) (T, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, false
	}
	return diff, true
}

func Mul[T Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	// the most negative value has no product with -1
	if b == -1 {
		return Neg(a)
	}
	if a == -1 {
		return Neg(b)
	}
	prod := a * b
	if prod/b != a {
		return 0, false
	}
	return prod, true
}

func Neg[T Integer](a T) (T, bool) {
	if a != 0 && a == -a {
		return 0, false
	}
	return -a, true
}
