package lightloop

// SortAlgorithm identifies the algorithm SortLightKeys picked.
type SortAlgorithm int

const (
	SortInsertion SortAlgorithm = iota
	SortMerge
	SortRadix
)

// Selection thresholds for SelectSortAlgorithm.
const (
	InsertionSortMaxCount = 32
	MergeSortMaxSize      = 200
)

func (a SortAlgorithm) String() string {
	switch a {
	case SortInsertion:
		return "insertion"
	case SortMerge:
		return "merge"
	case SortRadix:
		return "radix"
	default:
		return "unknown"
	}
}

// SelectSortAlgorithm picks the algorithm for count keys in a store of the given
// size. Small inputs use insertion sort, medium stores merge sort, and
// everything else radix sort, which keeps the worst case predictable.
func SelectSortAlgorithm(count, size int) SortAlgorithm {
	switch {
	case count <= InsertionSortMaxCount:
		return SortInsertion
	case size <= MergeSortMaxSize:
		return SortMerge
	default:
		return SortRadix
	}
}

// SortLightKeys sorts the processed lights' keys in ascending order and
// returns the algorithm used. Must run after ProcessVisibleLights has returned.
func (s *VisibleLightStore) SortLightKeys() SortAlgorithm {
	count := s.ProcessedCount()
	algo := SelectSortAlgorithm(count, s.size)
	if count < 2 {
		return algo
	}
	switch algo {
	case SortInsertion:
		InsertionSort(s.sortKeys, count)
	case SortMerge:
		MergeSort(s.sortKeys, count, &s.sortSupport)
	default:
		RadixSort(s.sortKeys, count, &s.sortSupport)
	}
	return algo
}

// InsertionSort sorts keys[:n] in place.
func InsertionSort(keys []uint32, n int) {
	keys = keys[:n]
	for i := 1; i < len(keys); i++ {
		k := keys[i]
		j := i - 1
		for j >= 0 && keys[j] > k {
			keys[j+1] = keys[j]
			j--
		}
		keys[j+1] = k
	}
}

// MergeSort sorts keys[:n] with a bottom-up merge sort. *support is the scratch
// buffer; it is allocated at len(keys) when missing or too small and kept for
// later calls.
func MergeSort(keys []uint32, n int, support *[]uint32) {
	if n < 2 {
		return
	}
	tmp := ensureSupport(support, len(keys), n)
	src, dst := keys[:n], tmp[:n]
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(dst[lo:hi], src[lo:mid], src[mid:hi])
		}
		src, dst = dst, src
	}
	if &src[0] != &keys[0] {
		copy(keys[:n], src)
	}
}

func merge(dst, a, b []uint32) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}

// RadixSort sorts keys[:n] with a least-significant-digit radix sort over four
// 8-bit digits, using *support as scratch like MergeSort.
func RadixSort(keys []uint32, n int, support *[]uint32) {
	if n < 2 {
		return
	}
	tmp := ensureSupport(support, len(keys), n)
	src, dst := keys[:n], tmp[:n]
	var counts [256]int
	for shift := 0; shift < 32; shift += 8 {
		clear(counts[:])
		for _, k := range src {
			counts[k>>shift&0xff]++
		}
		offset := 0
		for d, c := range counts {
			counts[d] = offset
			offset += c
		}
		for _, k := range src {
			d := k >> shift & 0xff
			dst[counts[d]] = k
			counts[d]++
		}
		src, dst = dst, src
	}
	// Four passes leave the result back in keys.
}

// ensureSupport returns a scratch buffer holding at least n entries, growing
// *support to size when needed.
func ensureSupport(support *[]uint32, size, n int) []uint32 {
	if len(*support) < n {
		*support = make([]uint32, max(size, n))
	}
	return *support
}
