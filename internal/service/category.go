package service

// Category is one of the four BMI health classifications.
type Category int

const (
	Underweight Category = iota
	Normal
	Overweight
	Obese
)

// Lower bounds (inclusive) of the categories above Underweight.
const (
	normalFloor     = 18.5
	overweightFloor = 25.0
	obeseFloor      = 30.0
)

// Classify returns the category for bmi. Each band is closed at its lower
// edge and open at its upper edge.
func Classify(bmi float64) Category {
	switch {
	case bmi < normalFloor:
		return Underweight
	case bmi < overweightFloor:
		return Normal
	case bmi < obeseFloor:
		return Overweight
	default:
		return Obese
	}
}

// CategoryInfo is the fixed guidance shown for a category.
type CategoryInfo struct {
	Label     string
	Message   string
	Advice    []string
	ColorCode string
}

var categoryTable = [...]CategoryInfo{
	Underweight: {
		Label:   "Underweight",
		Message: "You may need to gain weight. Consult with a healthcare provider.",
		Advice: []string{
			"Eat protein-rich foods",
			"Eat 5-6 small meals daily",
			"Do strength training",
			"Consult a nutritionist",
		},
		ColorCode: "#3498db",
	},
	Normal: {
		Label:   "Normal weight",
		Message: "You have a healthy weight. Keep up the good work!",
		Advice: []string{
			"Maintain current routine",
			"Continue regular exercise",
			"Eat a balanced diet",
			"Get 7-8 hours of sleep",
		},
		ColorCode: "#27ae60",
	},
	Overweight: {
		Label:   "Overweight",
		Message: "You may need to lose some weight. Consider a balanced diet and exercise.",
		Advice: []string{
			"Reduce calorie intake",
			"Walk 30 minutes daily",
			"Avoid sugar and fried foods",
			"Drink 3-4 liters of water",
		},
		ColorCode: "#f39c12",
	},
	Obese: {
		Label:   "Obese",
		Message: "Your health may be at risk. Please consult with a healthcare provider.",
		Advice: []string{
			"Consult a doctor immediately",
			"Follow a proper diet plan",
			"Get regular medical checkups",
			"Make lifestyle changes",
		},
		ColorCode: "#e74c3c",
	},
}

// Info returns the guidance for c. The Advice slice is shared; callers must
// copy it before modifying.
func (c Category) Info() CategoryInfo {
	if c < Underweight || c > Obese {
		return CategoryInfo{}
	}
	return categoryTable[c]
}

// String returns the label used on the wire, e.g. "Normal weight".
func (c Category) String() string {
	return c.Info().Label
}

// Categories lists every category in ascending BMI order.
func Categories() []Category {
	return []Category{Underweight, Normal, Overweight, Obese}
}
