package jsonio

// SizeClass buckets payload sizes for advisory messages.
type SizeClass int

const (
	SizeTiny SizeClass = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
)

var sizeClassLimits = [...]struct {
	class SizeClass
	limit int64
}{
	{SizeTiny, 1 << 10},
	{SizeSmall, 10 << 20},
	{SizeMedium, 100 << 20},
	{SizeLarge, 1 << 30},
}

// ClassifySize returns the bucket for n bytes.
func ClassifySize(n int64) SizeClass {
	for _, l := range sizeClassLimits {
		if n < l.limit {
			return l.class
		}
	}
	return SizeHuge
}

func (c SizeClass) String() string {
	switch c {
	case SizeTiny:
		return "tiny"
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "huge"
	}
}
