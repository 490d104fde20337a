// Package catalog holds the static product catalog: the selectable case
// options and the pricing rules. All values are compiled-in constants with no
// lifecycle; handlers validate incoming option tokens against these tables.
package catalog

// Prices are integer cents.
const (
	BasePriceCents = 14_00

	PolycarbonateSurchargeCents = 5_00
	TexturedSurchargeCents      = 3_00
)

type Color struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// Tailwind color token the frontend uses for swatches.
	Tailwind string `json:"tw"`
}

type PhoneModel struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Material struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
}

type Finish struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
}

var Colors = []Color{
	{Label: "Black", Value: "black", Tailwind: "zinc-900"},
	{Label: "Blue", Value: "blue", Tailwind: "blue-950"},
	{Label: "Rose", Value: "rose", Tailwind: "rose-950"},
}

var PhoneModels = []PhoneModel{
	{Label: "iPhone X", Value: "iphonex"},
	{Label: "iPhone 11", Value: "iphone11"},
	{Label: "iPhone 12", Value: "iphone12"},
	{Label: "iPhone 13", Value: "iphone13"},
	{Label: "iPhone 14", Value: "iphone14"},
	{Label: "iPhone 15", Value: "iphone15"},
	{Label: "iPhone 16", Value: "iphone16"},
}

var Materials = []Material{
	{Label: "Silicon", Value: "silicon", PriceCents: 0},
	{Label: "Soft Polycarbonate", Value: "polycarbonate", Description: "Scratch-resistant coating", PriceCents: PolycarbonateSurchargeCents},
}

var Finishes = []Finish{
	{Label: "Smooth Finish", Value: "smooth", PriceCents: 0},
	{Label: "Textured Finish", Value: "textured", Description: "Soft grippy texture", PriceCents: TexturedSurchargeCents},
}

func ColorByValue(value string) (Color, bool) {
	for _, c := range Colors {
		if c.Value == value {
			return c, true
		}
	}
	return Color{}, false
}

func PhoneModelByValue(value string) (PhoneModel, bool) {
	for _, m := range PhoneModels {
		if m.Value == value {
			return m, true
		}
	}
	return PhoneModel{}, false
}

func MaterialByValue(value string) (Material, bool) {
	for _, m := range Materials {
		if m.Value == value {
			return m, true
		}
	}
	return Material{}, false
}

func FinishByValue(value string) (Finish, bool) {
	for _, f := range Finishes {
		if f.Value == value {
			return f, true
		}
	}
	return Finish{}, false
}

func DefaultColor() Color           { return Colors[0] }
func DefaultPhoneModel() PhoneModel { return PhoneModels[0] }
func DefaultMaterial() Material     { return Materials[0] }
func DefaultFinish() Finish         { return Finishes[0] }

// CheckoutPriceCents is the pricing rule applied at checkout. Only the
// textured finish and the polycarbonate material carry a surcharge; other
// option values are priced into the base.
func CheckoutPriceCents(material, finish string) int64 {
	price := int64(BasePriceCents)
	if finish == "textured" {
		price += TexturedSurchargeCents
	}
	if material == "polycarbonate" {
		price += PolycarbonateSurchargeCents
	}
	return price
}

// DisplayPriceCents is the running total shown while configuring: base price
// plus the per-option price fields.
func DisplayPriceCents(material Material, finish Finish) int64 {
	return BasePriceCents + material.PriceCents + finish.PriceCents
}
