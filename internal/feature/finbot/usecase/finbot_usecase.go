// Package usecase はFinBotの応答ロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"
)

const (
	// HintNoLLM はルールに一致せずLLMも未設定の場合の応答です。
	HintNoLLM = "I'm FinBot. Connect an LLM key in the backend configuration for richer answers."
	// HintLLMUnavailable はLLMの呼び出しに失敗した場合の応答です。
	HintLLMUnavailable = "I'm FinBot. I couldn't reach the language model right now; try asking about budgets, loans, taxes or investments."
	// DefaultLLMTimeout はLLM呼び出しの上限時間です。
	DefaultLLMTimeout = 20 * time.Second
	// MaxMessageLength はメッセージの最大文字数（rune数）です。
	MaxMessageLength = 2000
)

var (
	// ErrEmptyMessage は空のメッセージを示します。
	ErrEmptyMessage = errors.New("message required")
	// ErrMessageTooLong はメッセージが長すぎることを示します。
	ErrMessageTooLong = errors.New("message too long")
)

// Responder は自由文のプロンプトに応答するLLMクライアントです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

type rule struct {
	keywords []string
	reply    string
}

// rules は上から順に評価されます。キーワードは単語の先頭で一致します。
var rules = []rule{
	{[]string{"tax"}, "For Indian taxes, compare new vs old regime. Provide income and deductions; I can estimate your liability."},
	{[]string{"budget", "saving"}, "A simple 50/30/20 split works well: 50% essentials, 30% wants, 20% savings/investments."},
	{[]string{"loan", "emi"}, "Check interest rates, tenure, and EMIs. Personal loans usually have higher rates than home or auto loans."},
	{[]string{"mutual fund"}, "Mutual funds pool money from investors to buy a diversified portfolio of stocks and bonds. Check expense ratio before investing."},
	{[]string{"stock", "equity"}, "Stocks represent ownership in a company. Diversify your portfolio to reduce risk."},
	{[]string{"crypto", "bitcoin"}, "Cryptocurrencies are volatile digital assets. Only invest what you can afford to lose."},
	{[]string{"fd", "fixed deposit"}, "Fixed deposits are low-risk, interest-bearing deposits with banks. Longer tenure usually gives higher interest."},
	{[]string{"expense"}, "Track your income and expenses. Categorize as essentials, wants, and savings."},
	{[]string{"credit card", "debt"}, "Pay your credit card dues on time to avoid interest. Keep utilization below 30% for good credit score."},
	{[]string{"bank", "account"}, "Ensure KYC is updated and use secure channels for banking transactions."},
	{[]string{"retirement", "pension"}, "Start investing early in retirement plans like PPF, EPF, or NPS to benefit from compounding."},
}

// FinBotUsecase はルールベースの応答と、必要に応じたLLMへの委譲を行います。
type FinBotUsecase struct {
	llm     Responder // nil の場合はLLMなし
	timeout time.Duration
}

// NewFinBotUsecase はFinBotUsecaseを生成します。
func NewFinBotUsecase(llm Responder, timeout time.Duration) *FinBotUsecase {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	return &FinBotUsecase{llm: llm, timeout: timeout}
}

// Reply はメッセージへの応答を返します。ルールに一致しない場合のみLLMを呼びます。
// LLMの失敗は定型文に置き換えられ、エラーは入力検証の失敗のときだけ返ります。
func (u *FinBotUsecase) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if len([]rune(message)) > MaxMessageLength {
		return "", ErrMessageTooLong
	}

	if reply, ok := MatchRule(message); ok {
		return reply, nil
	}

	if u.llm == nil {
		return HintNoLLM, nil
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	reply, err := u.llm.Respond(ctx, message)
	if err != nil {
		slog.Warn("finbot llm call failed", "error", err)
		return HintLLMUnavailable, nil
	}
	if strings.TrimSpace(reply) == "" {
		return HintLLMUnavailable, nil
	}
	return reply, nil
}

// MatchRule はメッセージに一致する最初のルールの応答を返します。
func MatchRule(message string) (string, bool) {
	text := " " + normalize(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, " "+kw) {
				return r.reply, true
			}
		}
	}
	return "", false
}

func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
