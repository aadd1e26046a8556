// Package errors はプロジェクト全体のエラーハンドリングを提供します。
// cockroachdb/errors をベースに、スタックトレースとエラー分類（マーク）を付与した
// 構造化エラー型を定義します。
//
// 全てのエラーは次の3つの分類のいずれかにマークされます:
//
//   - ErrPreconditionViolation: 空の入力、次元の不一致、未学習モデルなど
//   - ErrInvalidArgument: 未知の戦略名・メトリクス名、不正なオプション値
//   - ErrAlignment: 変換後の特徴量と目的変数の行数が一致しない
//
// 呼び出し側は Is(err, ErrPreconditionViolation) のように分類で判定し、
// 詳細が必要な場合は As で具体的な型を取り出します。
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	エラー分類
//
// ===========================================================================

var (
	// ErrPreconditionViolation は入力が操作の前提条件を満たさない場合の分類です。
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrInvalidArgument は設定可能な関数に未知の名前や不正な値が渡された場合の分類です。
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlignment は特徴量行列と目的変数の行が対応しなくなった場合の分類です。
	ErrAlignment = errors.New("alignment error")
)

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = errors.New("empty data")

	// ErrSingularMatrix は最小二乗解が求められない場合のエラーです。
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrNoObservedValues は欠損していない値が一つもなく、補完値が定義できない場合のエラーです。
	ErrNoObservedValues = errors.New("no observed values")

	// ErrZeroVariance は分散が0で、R² などの比率が定義できない場合のエラーです。
	ErrZeroVariance = errors.New("zero variance")
)

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で Predict などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("houseval: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(errors.Mark(err, ErrPreconditionViolation))
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0: 行, 1: 列（特徴量）
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("houseval: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(errors.Mark(err, ErrPreconditionViolation))
}

// InvalidArgumentError は未知の名前や範囲外の値が引数に渡された場合のエラーです。
type InvalidArgumentError struct {
	Op      string
	Param   string
	Value   interface{}
	Allowed []string // 受け付ける値（名前で選択する引数の場合）
}

func (e *InvalidArgumentError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("houseval: %s: invalid %s %v (allowed: %s)",
			e.Op, e.Param, e.Value, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("houseval: %s: invalid %s %v", e.Op, e.Param, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidArgumentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Interface("value", e.Value).
		Strs("allowed", e.Allowed).
		Str("type", "InvalidArgumentError")
}

// NewInvalidArgumentError は新しいInvalidArgumentErrorを作成します。
func NewInvalidArgumentError(op, param string, value interface{}, allowed ...string) error {
	err := &InvalidArgumentError{Op: op, Param: param, Value: value, Allowed: allowed}
	return errors.WithStack(errors.Mark(err, ErrInvalidArgument))
}

// AlignmentError は変換の結果、特徴量と目的変数の行数が対応しなくなった場合のエラーです。
type AlignmentError struct {
	Op       string
	Scenario string
	Features int // 変換後の特徴量行列の行数
	Targets  int // 対応付けられた目的変数の長さ
	Reason   string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("houseval: %s: scenario %q: %s (features=%d rows, targets=%d)",
		e.Op, e.Scenario, e.Reason, e.Features, e.Targets)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *AlignmentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("scenario", e.Scenario).
		Int("features", e.Features).
		Int("targets", e.Targets).
		Str("reason", e.Reason).
		Str("type", "AlignmentError")
}

// NewAlignmentError は新しいAlignmentErrorを作成します。
func NewAlignmentError(op, scenario string, features, targets int, reason string) error {
	err := &AlignmentError{Op: op, Scenario: scenario, Features: features, Targets: targets, Reason: reason}
	return errors.WithStack(errors.Mark(err, ErrAlignment))
}

// ModelError は計算の前提が崩れた場合の一般的なエラーです。
// Err には ErrEmptyData などの原因を渡します。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("houseval: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("houseval: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、前提条件違反としてマークします。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(errors.Mark(modelErr, ErrPreconditionViolation))
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラー（または分類）に該当するかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
