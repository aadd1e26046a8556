package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/YuminosukeSato/houseval/pkg/errors"
)

// ChecksumKey は Metadata に格納する係数チェックサムのキー
const ChecksumKey = "checksum"

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（LinearRegression 等）
	ModelType string `json:"model_type"`

	// Version はモデルのバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients は重み係数
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片
	Intercept float64 `json:"intercept"`

	// Features は特徴量の名前（オプション）
	Features []string `json:"features,omitempty"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（学習時の統計、チェックサム等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "decode model weights")
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	const op = "ModelWeights.Validate"

	if mw.ModelType == "" {
		return errors.NewInvalidArgumentError(op, "model_type", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewInvalidArgumentError(op, "version", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewInvalidArgumentError(op, "coefficients", "unfitted model with coefficients")
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewModelError(op, "fitted model must have coefficients", errors.ErrEmptyData)
	}
	if len(mw.Features) > 0 && len(mw.Features) != len(mw.Coefficients) {
		return errors.NewDimensionError(op, len(mw.Coefficients), len(mw.Features), 1)
	}
	return mw.VerifyChecksum()
}

// Seal は係数のチェックサムを Metadata に書き込む
func (mw *ModelWeights) Seal() {
	if mw.Metadata == nil {
		mw.Metadata = make(map[string]interface{})
	}
	mw.Metadata[ChecksumKey] = CoefficientChecksum(mw.Coefficients, mw.Intercept)
}

// VerifyChecksum は Metadata のチェックサムが係数と一致するかを検証する
// チェックサムがない場合は検証しない
func (mw *ModelWeights) VerifyChecksum() error {
	stored, ok := mw.Metadata[ChecksumKey].(string)
	if !ok {
		return nil
	}
	if stored != CoefficientChecksum(mw.Coefficients, mw.Intercept) {
		return errors.New("checksum mismatch: weights may be corrupted")
	}
	return nil
}

// CoefficientChecksum は係数と切片の sha256 を16進文字列で返す
func CoefficientChecksum(coef []float64, intercept float64) string {
	data, _ := json.Marshal(append(append([]float64(nil), coef...), intercept))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    append([]float64(nil), mw.Coefficients...),
		Features:        append([]string(nil), mw.Features...),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}
