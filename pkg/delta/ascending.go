package delta

import "fmt"

// Ascending id encoding. Each group starts with a control word whose value
// shifted right by 5 selects the op:
//
//	op 0:   (w&0x1f)+1 values; the next word is the delta of the first value
//	        from the previous group's last value, followed by one delta per
//	        remaining value.
//	op 1-3: a run of (w-0x20)+2 consecutive values; the next word is the
//	        delta of the first value.
const (
	maxGroup = 0x20
	maxRun   = 0x61
)

// EncodeAscending encodes sorted ids. Runs of consecutive ids become run
// groups; everything else goes into explicit groups.
func EncodeAscending(in []uint32) []uint32 {
	var out []uint32
	var v uint32
	i := 0
	for i < len(in) {
		if i+1 >= len(in) {
			out = append(out, 0, in[i]-v)
			v = in[i]
			i++
			continue
		}
		if in[i]+1 == in[i+1] {
			j := i + 1
			n := min(len(in), i+maxRun)
			for j+1 < n && in[j]+1 == in[j+1] {
				j++
			}
			out = append(out, uint32(0x20+(j-i+1-2)), in[i]-v)
			v = in[j]
			i = j + 1
			continue
		}
		j := i + 1
		n := min(len(in), i+maxGroup+2)
		for j+1 < n {
			if in[j]+1 == in[j+1] {
				j--
				break
			}
			j++
		}
		if j-i > maxGroup-1 {
			j = i + maxGroup - 1
		}
		out = append(out, uint32(j-i), in[i]-v)
		for i++; i <= j; i++ {
			out = append(out, in[i]-in[i-1])
		}
		v = in[j]
	}
	return out
}

// DecodeAscending expands words produced by [EncodeAscending].
func DecodeAscending(words []uint32) ([]uint32, error) {
	var out []uint32
	var v uint32
	for i := 0; i < len(words); {
		w := words[i]
		switch w >> 5 {
		case 1, 2, 3:
			if i+1 >= len(words) {
				return nil, fmt.Errorf("ascending: truncated run at word %d", i)
			}
			n := int(w-0x20) + 2
			v += words[i+1]
			for k := 0; k < n; k++ {
				out = append(out, v+uint32(k))
			}
			v += uint32(n - 1)
			i += 2
		case 0:
			n := int(w&0x1f) + 1
			if i+n >= len(words) {
				return nil, fmt.Errorf("ascending: truncated group at word %d", i)
			}
			for k := 0; k < n; k++ {
				v += words[i+1+k]
				out = append(out, v)
			}
			i += 1 + n
		default:
			return nil, fmt.Errorf("ascending: invalid op %d at word %d", w>>5, i)
		}
	}
	return out, nil
}
