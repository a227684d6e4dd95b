package footprint

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/wgdzlh/orthowarp/log"
	"github.com/wgdzlh/orthowarp/utils"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const eopColumns = 7 // name,lon,lat,alt,yaw,pitch,roll

// 内存外方位元素表
type OrientationTable struct {
	eops map[string]ExteriorOrientation
	lock sync.RWMutex
}

func NewOrientationTable() *OrientationTable {
	return &OrientationTable{eops: map[string]ExteriorOrientation{}}
}

func (t *OrientationTable) Set(key string, eo ExteriorOrientation) {
	t.lock.Lock()
	t.eops[key] = eo
	t.lock.Unlock()
}

func (t *OrientationTable) Orientation(key string) (eo ExteriorOrientation, err error) {
	t.lock.RLock()
	eo, ok := t.eops[key]
	t.lock.RUnlock()
	if !ok {
		err = &OrientationNotFoundError{Key: key}
	}
	return
}

func (t *OrientationTable) Len() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return len(t.eops)
}

// 按名称排序的全部影像名
func (t *OrientationTable) Keys() (keys []string) {
	t.lock.RLock()
	keys = make([]string, 0, len(t.eops))
	for k := range t.eops {
		keys = append(keys, k)
	}
	t.lock.RUnlock()
	sort.Strings(keys)
	return
}

// 读取外方位元素CSV：name,lon,lat,alt,yaw,pitch,roll
// 首行表头可选，#开头为注释；enc为GBK时先转UTF-8
func LoadOrientationCSV(r io.Reader, enc string) (t *OrientationTable, err error) {
	rd := csv.NewReader(utils.NewDecodingReader(r, enc))
	rd.Comment = '#'
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true
	t = NewOrientationTable()
	var (
		rec  []string
		line int
	)
	for {
		if rec, err = rd.Read(); err == io.EOF {
			err = nil
			break
		} else if err != nil {
			err = errors.Wrap(err, "read EOP csv")
			return
		}
		line++
		if len(rec) != eopColumns {
			err = errors.Wrapf(ErrInvalidEOPRecord, "line %d has %d columns", line, len(rec))
			return
		}
		vals := [eopColumns - 1]float64{}
		var e error
		for i := range vals {
			if vals[i], e = strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64); e != nil {
				break
			}
		}
		if e != nil {
			if line == 1 {
				continue // 表头
			}
			err = errors.Wrapf(ErrInvalidEOPRecord, "line %d: %v", line, e)
			return
		}
		t.Set(utils.PurifyForUtf8(strings.TrimSpace(rec[0])), ExteriorOrientation{
			Lon:   vals[0],
			Lat:   vals[1],
			Alt:   vals[2],
			Yaw:   vals[3],
			Pitch: vals[4],
			Roll:  vals[5],
		})
	}
	log.Info("Footprint:loaded EOP table", zap.Int("cnt", t.Len()), zap.String("encoding", enc))
	return
}
