package config

import "strconv"

type ListConfig interface {
	GetDefaultPageSize() int
}

type List struct{}

var _ ListConfig = List{}

func (List) GetDefaultPageSize() int {
	if v := GetEnv("PAGE_SIZE", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 10
}
