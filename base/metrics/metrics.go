/*Package metrics wraps datadog-go to record engine and http metrics
Following are naming convention of metric:
- Internal process time: *.time
- Operation outcome: *.ok / *.err
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/x-xyz/gomarket/base/env"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	ddTags := []string{
		// using host removes all tags associated with host
		// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
		"host:",
		"pod:" + env.PodName(),
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{ddTags: ddTags},
	}
}

// Metrics prefixes every key with the package name before handing it to datadog
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

// bumpSumPanic reports a bump that panicked, usually because of odd tags
func (mt *Metrics) bumpSumPanic(key, tag string) {
	mt.datadog.BumpSum("bump.panic", 1, "func", key, "tag", tag)
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + `.` + key
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer func() {
		if err := recover(); err != nil {
			mt.bumpSumPanic("bumpavg", mt.key(key)+"#"+strings.Join(tags, "#"))
		}
	}()
	mt.datadog.BumpAvg(mt.key(key), val, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer func() {
		if err := recover(); err != nil {
			mt.bumpSumPanic("bumpsum", mt.key(key)+"#"+strings.Join(tags, "#"))
		}
	}()
	mt.datadog.BumpSum(mt.key(key), val, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer func() {
		if err := recover(); err != nil {
			mt.bumpSumPanic("bumphistogram", mt.key(key)+"#"+strings.Join(tags, "#"))
		}
	}()
	mt.datadog.BumpHistogram(mt.key(key), val, tags...)
}

// BumpTime starts a timer and returns a value on which End() stops it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return mt.datadog.BumpTime(mt.key(key), tags...)
}
