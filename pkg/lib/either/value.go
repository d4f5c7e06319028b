package either

import (
	"errors"
	"fmt"
)

// ErrEmpty 零值适配器上调用操作
var ErrEmpty = errors.New("either: no variant set")

// Side 变体标签
type Side uint8

const (
	// First 第一个备选（Or 组合子的左侧）
	First Side = iota + 1
	// Second 第二个备选（Or 组合子的右侧）
	Second
)

// String 返回标签名
func (s Side) String() string {
	switch s {
	case First:
		return "First"
	case Second:
		return "Second"
	default:
		return "Empty"
	}
}

// Value 两路和类型
//
// 任意时刻恰好一个变体有效；零值不属于任何变体。
type Value[A, B any] struct {
	side   Side
	first  A
	second B
}

// FirstValue 构造 First 变体
func FirstValue[A, B any](a A) Value[A, B] {
	return Value[A, B]{side: First, first: a}
}

// SecondValue 构造 Second 变体
func SecondValue[A, B any](b B) Value[A, B] {
	return Value[A, B]{side: Second, second: b}
}

// Side 返回当前变体
func (v Value[A, B]) Side() Side {
	return v.side
}

// First 返回 First 变体的值
func (v Value[A, B]) First() (A, bool) {
	return v.first, v.side == First
}

// Second 返回 Second 变体的值
func (v Value[A, B]) Second() (B, bool) {
	return v.second, v.side == Second
}

// String 实现 fmt.Stringer
func (v Value[A, B]) String() string {
	switch v.side {
	case First:
		return fmt.Sprintf("First(%v)", v.first)
	case Second:
		return fmt.Sprintf("Second(%v)", v.second)
	default:
		return "Empty"
	}
}

// Fold 按变体调用对应函数
func Fold[A, B, R any](v Value[A, B], onFirst func(A) R, onSecond func(B) R) (R, error) {
	switch v.side {
	case First:
		return onFirst(v.first), nil
	case Second:
		return onSecond(v.second), nil
	default:
		var zero R
		return zero, ErrEmpty
	}
}
