// Package usecase は家計の分類と予算配分を実装します。
package usecase

import (
	"strings"
	"unicode"

	"fin_backend/internal/feature/budget/domain/entity"
)

// 予算配分の比率（50/30/20ルール）
const (
	shareEssentials = 0.5
	shareWants      = 0.3
	shareSavings    = 0.2
)

// rule は1つのカテゴリに対応するキーワードの集合です。
type rule struct {
	category string
	keywords []string
}

// rules は上から順に評価され、最初に一致したカテゴリが採用されます。
var rules = []rule{
	{entity.CategoryRent, []string{"rent", "lease", "landlord", "mortgage"}},
	{entity.CategoryUtilities, []string{"electric", "electricity", "water bill", "gas bill", "internet", "wifi", "broadband", "phone bill", "mobile recharge", "utility"}},
	{entity.CategoryGroceries, []string{"grocery", "groceries", "supermarket", "vegetables", "fruits", "milk", "bread", "walmart", "costco", "kroger", "bigbasket"}},
	{entity.CategoryDining, []string{"restaurant", "cafe", "coffee", "starbucks", "pizza", "burger", "dinner", "lunch", "breakfast", "swiggy", "zomato", "doordash", "ubereats", "takeout"}},
	{entity.CategoryTransport, []string{"uber", "lyft", "ola", "taxi", "cab", "bus", "metro", "train", "fuel", "petrol", "gas station", "parking", "toll", "flight"}},
	{entity.CategoryHealth, []string{"pharmacy", "medicine", "doctor", "hospital", "clinic", "dental", "gym", "insurance"}},
	{entity.CategoryEntertainment, []string{"netflix", "spotify", "movie", "cinema", "concert", "game", "prime video", "hulu", "disney"}},
	{entity.CategoryShopping, []string{"amazon", "flipkart", "clothes", "shoes", "mall", "electronics", "shopping", "ikea"}},
}

// BudgetUsecase は支出の分類と予算の提案を行います。
type BudgetUsecase struct{}

// NewBudgetUsecase はBudgetUsecaseを生成します。
func NewBudgetUsecase() *BudgetUsecase {
	return &BudgetUsecase{}
}

// Categorize は支出のみを対象に、説明文からカテゴリを推定します。収入は結果から除かれます。
func (u *BudgetUsecase) Categorize(items []entity.Item) []entity.CategorizedItem {
	out := make([]entity.CategorizedItem, 0, len(items))
	for _, it := range items {
		if it.Type == "" {
			it.Type = entity.TypeExpense
		}
		if it.Type != entity.TypeExpense {
			continue
		}
		out = append(out, entity.CategorizedItem{Item: it, Category: Classify(it.Description)})
	}
	return out
}

// Recommend は収入の合計を50/30/20に配分します。
func (u *BudgetUsecase) Recommend(history []entity.Item) entity.Recommendation {
	var income float64
	for _, h := range history {
		if h.Type == entity.TypeIncome {
			income += h.Amount
		}
	}
	return entity.Recommendation{
		MonthlyIncome: income,
		Essentials:    shareEssentials * income,
		Wants:         shareWants * income,
		Savings:       shareSavings * income,
	}
}

// Classify は説明文を正規化し、キーワードに一致するカテゴリを返します。一致しない場合は"other"です。
func Classify(description string) string {
	text := " " + normalize(description) + " "
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, " "+kw+" ") {
				return r.category
			}
		}
	}
	return entity.CategoryOther
}

// normalize は小文字化し、英数字以外を空白に置き換えて連続空白を詰めます。
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
