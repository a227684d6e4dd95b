package utils

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

const GBK = "GBK"

// 按编码名包装reader，GBK/GB18030转为UTF-8，其余原样返回
func NewDecodingReader(r io.Reader, enc string) io.Reader {
	switch strings.ToUpper(enc) {
	case GBK:
		return transform.NewReader(r, simplifiedchinese.GBK.NewDecoder())
	case "GB18030":
		return transform.NewReader(r, simplifiedchinese.GB18030.NewDecoder())
	}
	return r
}

// GBK 转 UTF-8
func GbkToUtf8(s []byte) (d []byte, e error) {
	return io.ReadAll(NewDecodingReader(bytes.NewReader(s), GBK))
}

// UTF-8 转 GBK
func Utf8ToGbk(s []byte) (d []byte, e error) {
	reader := transform.NewReader(bytes.NewReader(s), simplifiedchinese.GBK.NewEncoder())
	d, e = io.ReadAll(reader)
	return
}

func PurifyForUtf8(s string) string {
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
}
