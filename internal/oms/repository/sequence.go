package repository

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	PrefixJobOrder      = "JO"
	PrefixDeliveryOrder = "DO"
)

// NextNumber 在 values 中找出 {prefix}{yy}-{序号} 的最大序号，返回下一个编号。
// 不匹配的值忽略；序号至少三位，超过 999 后继续递增。
func NextNumber(values []string, prefix, yearTwo string) string {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix+yearTwo) + `-(\d{3,})$`)
	maxSeq := 0
	for _, v := range values {
		m := pattern.FindStringSubmatch(strings.TrimSpace(v))
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s%s-%03d", prefix, yearTwo, maxSeq+1)
}

// YearTwo 两位年份
func YearTwo(now time.Time) string {
	return fmt.Sprintf("%02d", now.Year()%100)
}
