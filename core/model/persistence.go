package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/houseval/pkg/errors"
)

// SaveWeights は重みを検証してからJSONファイルに保存する
//
// 使用例:
//
//	w, err := reg.ExportWeights()
//	err = model.SaveWeights(w, "linear_model.json")
func SaveWeights(w *ModelWeights, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", filename)
		}
	}()

	return SaveWeightsToWriter(w, file)
}

// LoadWeights はJSONファイルから重みを読み込み、検証する
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return LoadWeightsFromReader(file)
}

// SaveWeightsToWriter は重みをio.Writerに書き出す
func SaveWeightsToWriter(mw *ModelWeights, w io.Writer) error {
	if err := mw.Validate(); err != nil {
		return err
	}
	data, err := mw.ToJSON()
	if err != nil {
		return errors.Wrap(err, "encode model weights")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "write model weights")
	}
	return nil
}

// LoadWeightsFromReader はio.Readerから重みを読み込む
func LoadWeightsFromReader(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model weights")
	}
	mw := &ModelWeights{}
	if err := mw.FromJSON(data); err != nil {
		return nil, err
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	return mw, nil
}
