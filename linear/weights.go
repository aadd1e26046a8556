package linear

import (
	"github.com/YuminosukeSato/houseval/core/model"
	"github.com/YuminosukeSato/houseval/pkg/errors"
)

// ExportWeights は学習済みの係数と切片を ModelWeights として書き出す
//
// features を渡すと列名として記録する（長さは特徴量数と一致する必要がある）。
//
// 使用例:
//
//	w, err := lr.ExportWeights("LotArea", "OverallQual")
//	err = model.SaveWeights(w, "linear_model.json")
func (lr *LinearRegression) ExportWeights(features ...string) (*model.ModelWeights, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "ExportWeights")
	}
	if len(features) > 0 && len(features) != lr.NFeatures() {
		return nil, errors.NewDimensionError("LinearRegression.ExportWeights", lr.NFeatures(), len(features), 1)
	}

	w := &model.ModelWeights{
		ModelType:       modelName,
		Version:         WeightsVersion,
		Coefficients:    lr.Coef(),
		Intercept:       lr.intercept,
		Features:        append([]string(nil), features...),
		Hyperparameters: lr.GetParams(),
		Metadata: map[string]interface{}{
			"rank": lr.rank,
		},
		IsFitted: true,
	}
	w.Seal()
	return w, nil
}

// ImportWeights は ModelWeights からモデルを復元する
//
// チェックサムが一致しない場合やモデルの種類が異なる場合はエラーを返す。
func (lr *LinearRegression) ImportWeights(w *model.ModelWeights) error {
	const op = "LinearRegression.ImportWeights"

	if err := w.Validate(); err != nil {
		return err
	}
	if w.ModelType != modelName {
		return errors.NewInvalidArgumentError(op, "model_type", w.ModelType, modelName)
	}
	if !w.IsFitted {
		return errors.NewNotFittedError(modelName, "ImportWeights")
	}
	if err := errors.CheckFinite(op, w.Coefficients); err != nil {
		return err
	}

	if fit, ok := w.Hyperparameters["fit_intercept"].(bool); ok {
		lr.fitIntercept = fit
	}
	if rcond, ok := w.Hyperparameters["rcond"].(float64); ok {
		lr.rcond = rcond
	}
	switch rank := w.Metadata["rank"].(type) {
	case int:
		lr.rank = rank
	case float64:
		// JSON から読み込んだ数値
		lr.rank = int(rank)
	}

	lr.coef = append([]float64(nil), w.Coefficients...)
	lr.intercept = w.Intercept
	lr.singular = nil
	lr.SetFitted(len(w.Coefficients))
	return nil
}
