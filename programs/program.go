package programs

import "fmt"

type Program struct {
	Name         string        `json:"name"`
	TotalLength  *float64      `json:"totalLength,omitempty"`
	Instructions []Instruction `json:"instructions"`
}

// Total is the sum of all instruction durations in nanoseconds.
func (p Program) Total() (float64, error) {
	var total float64
	for i, inst := range p.Instructions {
		ns, err := inst.Nanoseconds()
		if err != nil {
			return 0, fmt.Errorf("instruction %d: %w", i, err)
		}
		total += ns
	}
	return total, nil
}

// WithTotalLength returns a copy with TotalLength set to Total.
func (p Program) WithTotalLength() (Program, error) {
	total, err := p.Total()
	if err != nil {
		return p, err
	}
	ret := p.Clone()
	ret.TotalLength = &total
	return ret, nil
}

func (p Program) Clone() Program {
	ret := Program{
		Name: p.Name,
	}
	if p.TotalLength != nil {
		v := *p.TotalLength
		ret.TotalLength = &v
	}
	if p.Instructions != nil {
		ret.Instructions = make([]Instruction, len(p.Instructions))
		for i, inst := range p.Instructions {
			ret.Instructions[i] = inst.Clone()
		}
	}
	return ret
}
