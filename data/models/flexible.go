package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/guregu/null/v6"
)

// FlexibleInt is a nullable integer that also accepts float, scientific
// notation and quoted forms. Fractions are truncated toward zero.
type FlexibleInt struct {
	null.Int
}

func FlexibleIntFrom(i int64) FlexibleInt {
	return FlexibleInt{null.IntFrom(i)}
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "null" {
		f.Int = null.Int{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s = strings.TrimSpace(str)
		if s == "" {
			f.Int = null.Int{}
			return nil
		}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		f.Int = null.IntFrom(i)
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %s as an integer: %w", string(data), err)
	}
	if math.IsNaN(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return fmt.Errorf("%s is out of the int64 range", string(data))
	}

	f.Int = null.IntFrom(int64(v))
	return nil
}
