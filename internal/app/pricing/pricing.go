package pricing

// Оценка суммы счёта по заявке. Чистая функция: сперва таблица бюджетов,
// затем таблица типов сайта, иначе общий дефолт. Результат в рупиях.

const DefaultAmount = 25000

// budgetAmounts — суммы по строке бюджета из формы заявки
var budgetAmounts = map[string]int64{
	"under-5000":  5000,
	"5000-10000":  7500,
	"10000-25000": 17500,
	"25000-50000": 37500,
	"50000-plus":  75000,
}

// typeAmounts — суммы по типу сайта, если бюджет не распознан
var typeAmounts = map[string]int64{
	"ecommerce": 50000,
	"saas":      60000,
	"social":    75000,
	"business":  30000,
	"blog":      15000,
	"portfolio": 10000,
}

// EstimateAmount возвращает сумму счёта для заявки
func EstimateAmount(budget, websiteType string) int64 {
	if amount, ok := budgetAmounts[budget]; ok {
		return amount
	}
	if amount, ok := typeAmounts[websiteType]; ok {
		return amount
	}
	return DefaultAmount
}
