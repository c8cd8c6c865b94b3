// Package dataset はCSVデータセットの読み込みと特徴量・ラベルの抽出を提供する
package dataset

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classplot/pkg/errors"
)

const (
	// DefaultPath はデータセットの既定パス
	DefaultPath = "dataset_name.csv"

	// DefaultLabelColumn はラベル列の既定名
	DefaultLabelColumn = "y"
)

// DefaultFeatureColumns は特徴量列の既定名
var DefaultFeatureColumns = []string{"X1", "X2"}

// Table は名前付き列を持つ読み込み専用の表データ
type Table struct {
	df dataframe.DataFrame
}

// LoadCSV はpathのCSVファイルを読み込む
//
// 先頭行はヘッダとして扱われる。ファイルが存在しない場合や
// CSVとして不正な場合はエラーを返す。
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: read %s", path)
	}
	return t, nil
}

// utf8BOM は表計算ソフトの「CSV UTF-8」出力の先頭に付くバイト列
var utf8BOM = []byte("\ufeff")

// ReadCSV はrからCSVを読み込む
//
// 先頭のUTF-8 BOMは取り除かれる。ヘッダのみでデータ行がない場合は
// errors.ErrEmptyData を返す。
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSV")
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if countRecordLines(data) < 2 {
		return nil, errors.Wrap(errors.ErrEmptyData, "ReadCSV")
	}

	df := dataframe.ReadCSV(bytes.NewReader(data), dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		return nil, errors.NewValueError("ReadCSV", fmt.Sprintf("malformed csv: %v", df.Err))
	}
	return &Table{df: df}, nil
}

// countRecordLines は空白以外を含む行の数を数える
func countRecordLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

// Names は列名を返す
func (t *Table) Names() []string {
	return t.df.Names()
}

// Len は行数を返す
func (t *Table) Len() int {
	return t.df.Nrow()
}

// HasColumn は列nameが存在するかを返す
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Extract は特徴量行列とラベルベクトルを取り出す
//
// パラメータ:
//   - featureCols: 特徴量の列名 (行列の列順になる)
//   - labelCol: ラベルの列名
//
// 戻り値:
//   - *mat.Dense: n_samples × len(featureCols) の特徴量行列
//   - *mat.VecDense: 長さ n_samples のラベルベクトル
//   - error: 列が存在しない、または数値でないセルがある場合
//
// 返される行列とベクトルは表から独立したコピーで、
// i行目の特徴量はi番目のラベルに対応する。
func (t *Table) Extract(featureCols []string, labelCol string) (*mat.Dense, *mat.VecDense, error) {
	if len(featureCols) == 0 {
		return nil, nil, errors.NewValidationError("featureCols", "at least one feature column is required", featureCols)
	}

	// コピーの前に全ての列の存在を確認する
	for _, name := range append(append([]string(nil), featureCols...), labelCol) {
		if !t.HasColumn(name) {
			return nil, nil, errors.NewColumnNotFoundError("Extract", name, t.Names())
		}
	}

	n := t.Len()
	X := mat.NewDense(n, len(featureCols), nil)
	for j, name := range featureCols {
		col, err := numericColumn(t.df.Col(name))
		if err != nil {
			return nil, nil, err
		}
		X.SetCol(j, col)
	}

	labels, err := numericColumn(t.df.Col(labelCol))
	if err != nil {
		return nil, nil, err
	}
	for i, v := range labels {
		if !errors.IsIntegral(v) {
			errors.Warn(errors.NewDataConversionWarning("float64", "class label",
				fmt.Sprintf("column %s row %d holds non-integral label %v", labelCol, i, v)))
			break
		}
	}

	return X, mat.NewVecDense(n, labels), nil
}

// numericColumn は列の値をfloat64として取り出す
func numericColumn(s series.Series) ([]float64, error) {
	out := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		v := e.Float()
		if e.IsNA() || math.IsNaN(v) {
			return nil, errors.NewValueError("Extract",
				fmt.Sprintf("column %s row %d: %q is not a number", s.Name, i, e.String()))
		}
		out[i] = v
	}
	if err := errors.CheckFinite("Extract", s.Name, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassCounts はラベルごとの出現数を返す
func ClassCounts(y mat.Vector) map[float64]int {
	counts := make(map[float64]int)
	for i := 0; i < y.Len(); i++ {
		counts[y.AtVec(i)]++
	}
	return counts
}
