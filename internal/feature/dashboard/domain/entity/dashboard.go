// Package entity はdashboardフィーチャーのドメイン型を定義します。
package entity

import "time"

// Point はポートフォリオ推移の1日分です。
type Point struct {
	Date  time.Time
	Value float64
}

// KPIs はダッシュボード上部に表示する指標です。
type KPIs struct {
	Savings      float64
	CreditScore  int
	Returns      float64
	TaxLiability float64
}
