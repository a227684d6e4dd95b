package orthowarp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wgdzlh/orthowarp/footprint"
	"github.com/wgdzlh/orthowarp/log"
	"github.com/wgdzlh/orthowarp/utils"

	"github.com/google/uuid"
	"github.com/lukeroth/gdal"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (g *GdalToolbox) imagePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(g.conf.ImageDir, name)
}

func (g *GdalToolbox) openImage(name string) (ds gdal.Dataset, err error) {
	src := g.imagePath(name)
	if !utils.FileExists(src) {
		err = errors.Wrap(ErrImageNotExist, src)
		return
	}
	if ds, err = gdal.Open(src, gdal.ReadOnly); err != nil {
		log.Error(g.logTag+"open image failed", zap.String("image", src), zap.Error(err))
		err = errors.Wrap(ErrInvalidTif, src)
	}
	return
}

// 获取影像宽、高及波段数
func (g *GdalToolbox) ImageSize(name string) (width, height, bands int, err error) {
	ds, err := g.openImage(name)
	if err != nil {
		return
	}
	defer ds.Close()
	width, height, bands = ds.RasterXSize(), ds.RasterYSize(), ds.RasterCount()
	log.Debug(g.logTag+"got image size", zap.String("image", name), zap.Int("width", width), zap.Int("height", height), zap.Int("bands", bands))
	return
}

// 按覆盖范围角点作为像控点纠正影像，输出<ortho>/<name>-warp.tif
func (g *GdalToolbox) Warp(name string, fp footprint.Footprint) (out string, err error) {
	log.Info(g.logTag+"warping image", zap.String("image", name))
	sds, err := g.openImage(name)
	if err != nil {
		return
	}
	defer sds.Close()
	stem := utils.GetFilenameWithoutExt(name)
	translated := filepath.Join(g.conf.TmpDir, fmt.Sprintf(TMP_TRANSLATED, stem, uuid.NewString()))
	out = filepath.Join(g.conf.OrthoDir, stem+WARPED_SUFFIX)
	defer os.Remove(translated)
	if err = utils.RemoveIfExists(out); err != nil {
		return
	}
	opts := append([]string{"-of", "GTiff", "-a_srs", fmt.Sprintf("epsg:%d", g.conf.ProjectedSrid)}, fp.GCPOptions()...)
	tds, err := gdal.Translate(translated, sds, opts) // 写入像控点
	if err != nil {
		log.Error(g.logTag+"failed to translate image", zap.String("image", name), zap.Error(err))
		return
	}
	defer tds.Close()
	wds, err := gdal.Warp(out, nil, []gdal.Dataset{tds}, []string{"-r", g.conf.Resample, "-overwrite"})
	if err != nil {
		log.Error(g.logTag+"failed to warp image", zap.String("image", name), zap.Error(err))
		return
	}
	wds.Close()
	log.Info(g.logTag+"image warped", zap.String("image", name), zap.String("out", out))
	return
}

// 镶嵌多张纠正后影像，值为0的像元视为无效
func (g *GdalToolbox) Mosaic(warped []string, out string) (err error) {
	if len(warped) == 0 {
		err = ErrEmptyMosaic
		return
	}
	for _, w := range warped {
		if !utils.FileExists(w) {
			err = errors.Wrap(ErrImageNotExist, w)
			return
		}
	}
	log.Info(g.logTag+"mosaicking", zap.Int("tif_cnt", len(warped)), zap.String("out", out))
	if err = utils.RemoveIfExists(out); err != nil {
		return
	}
	tmpVrt := out + TMP_MOSAIC_VRT
	defer os.Remove(tmpVrt)
	// 将各景纠正结果拼接成一个VRT
	vds, err := gdal.BuildVRT(tmpVrt, nil, warped, []string{"-resolution", "highest", "-srcnodata", MOSAIC_NODATA, "-overwrite"})
	if err != nil {
		log.Error(g.logTag+"failed to build vrt", zap.Error(err))
		return
	}
	defer vds.Close()
	// 将VRT转为最终GTiff
	finalDs, err := gdal.Translate(out, vds, []string{"-of", "GTiff", "-co", "compress=lzw"})
	if err != nil {
		log.Error(g.logTag+"failed to translate vrt", zap.Error(err))
		return
	}
	finalDs.Close()
	log.Info(g.logTag+"mosaic done", zap.String("out", out))
	return
}
