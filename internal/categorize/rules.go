// Package categorize assigns a spending category to each extracted
// transaction through an ordered cascade: a local rule table first, then an
// optional on-device model, then an optional cloud model, falling back to
// the rule result. The cascade always produces a category.
package categorize

import (
	"sort"
	"strings"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// merchantRule is one known-merchant entry: a display name, a category and
// the confidence a match earns.
type merchantRule struct {
	Name        string
	Category    domain.Category
	Subcategory string
	Confidence  float64
}

// merchantRules maps lowercase merchant keywords to known Indian merchants.
// A direct hit is high-confidence and usually final.
var merchantRules = map[string]merchantRule{
	// Food delivery and restaurants
	"swiggy":          {Name: "Swiggy", Category: domain.CategoryFood, Subcategory: "Delivery", Confidence: 0.95},
	"zomato":          {Name: "Zomato", Category: domain.CategoryFood, Subcategory: "Delivery", Confidence: 0.95},
	"dominos":         {Name: "Domino's", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"domino's":        {Name: "Domino's", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"mcdonald":        {Name: "McDonald's", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"kfc":             {Name: "KFC", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"pizza hut":       {Name: "Pizza Hut", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"burger king":     {Name: "Burger King", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"haldiram":        {Name: "Haldiram's", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"barbeque nation": {Name: "Barbeque Nation", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"cafe coffee day": {Name: "Cafe Coffee Day", Category: domain.CategoryFood, Subcategory: "Cafe", Confidence: 0.95},
	"starbucks":       {Name: "Starbucks", Category: domain.CategoryFood, Subcategory: "Cafe", Confidence: 0.95},
	"subway":          {Name: "Subway", Category: domain.CategoryFood, Subcategory: "Restaurant", Confidence: 0.95},
	"eatsure":         {Name: "EatSure", Category: domain.CategoryFood, Subcategory: "Delivery", Confidence: 0.95},

	// Groceries and quick commerce
	"bigbasket":      {Name: "BigBasket", Category: domain.CategoryGroceries, Confidence: 0.95},
	"blinkit":        {Name: "Blinkit", Category: domain.CategoryGroceries, Subcategory: "Quick Commerce", Confidence: 0.95},
	"zepto":          {Name: "Zepto", Category: domain.CategoryGroceries, Subcategory: "Quick Commerce", Confidence: 0.95},
	"instamart":      {Name: "Swiggy Instamart", Category: domain.CategoryGroceries, Subcategory: "Quick Commerce", Confidence: 0.95},
	"grofers":        {Name: "Grofers", Category: domain.CategoryGroceries, Confidence: 0.95},
	"dmart":          {Name: "DMart", Category: domain.CategoryGroceries, Subcategory: "Supermarket", Confidence: 0.95},
	"jiomart":        {Name: "JioMart", Category: domain.CategoryGroceries, Confidence: 0.95},
	"reliance fresh": {Name: "Reliance Fresh", Category: domain.CategoryGroceries, Subcategory: "Supermarket", Confidence: 0.95},

	// Transport, fuel and travel
	"uber":        {Name: "Uber", Category: domain.CategoryTransport, Subcategory: "Ride Hailing", Confidence: 0.95},
	"ola":         {Name: "Ola", Category: domain.CategoryTransport, Subcategory: "Ride Hailing", Confidence: 0.95},
	"rapido":      {Name: "Rapido", Category: domain.CategoryTransport, Subcategory: "Ride Hailing", Confidence: 0.95},
	"irctc":       {Name: "IRCTC", Category: domain.CategoryTransport, Subcategory: "Rail", Confidence: 0.95},
	"redbus":      {Name: "redBus", Category: domain.CategoryTransport, Subcategory: "Bus", Confidence: 0.95},
	"indian oil":  {Name: "Indian Oil", Category: domain.CategoryTransport, Subcategory: "Fuel", Confidence: 0.95},
	"hpcl":        {Name: "HPCL", Category: domain.CategoryTransport, Subcategory: "Fuel", Confidence: 0.95},
	"bpcl":        {Name: "BPCL", Category: domain.CategoryTransport, Subcategory: "Fuel", Confidence: 0.95},
	"fastag":      {Name: "FASTag", Category: domain.CategoryTransport, Subcategory: "Toll", Confidence: 0.95},
	"makemytrip":  {Name: "MakeMyTrip", Category: domain.CategoryTransport, Subcategory: "Travel", Confidence: 0.95},
	"goibibo":     {Name: "Goibibo", Category: domain.CategoryTransport, Subcategory: "Travel", Confidence: 0.95},
	"indigo":      {Name: "IndiGo", Category: domain.CategoryTransport, Subcategory: "Airline", Confidence: 0.95},
	"air india":   {Name: "Air India", Category: domain.CategoryTransport, Subcategory: "Airline", Confidence: 0.95},

	// Shopping
	"amazon":           {Name: "Amazon", Category: domain.CategoryShopping, Confidence: 0.95},
	"flipkart":         {Name: "Flipkart", Category: domain.CategoryShopping, Confidence: 0.95},
	"myntra":           {Name: "Myntra", Category: domain.CategoryShopping, Subcategory: "Fashion", Confidence: 0.95},
	"ajio":             {Name: "AJIO", Category: domain.CategoryShopping, Subcategory: "Fashion", Confidence: 0.95},
	"meesho":           {Name: "Meesho", Category: domain.CategoryShopping, Confidence: 0.95},
	"nykaa":            {Name: "Nykaa", Category: domain.CategoryShopping, Subcategory: "Beauty", Confidence: 0.95},
	"tata cliq":        {Name: "Tata CLiQ", Category: domain.CategoryShopping, Confidence: 0.95},
	"decathlon":        {Name: "Decathlon", Category: domain.CategoryShopping, Subcategory: "Sports", Confidence: 0.95},
	"croma":            {Name: "Croma", Category: domain.CategoryShopping, Subcategory: "Electronics", Confidence: 0.95},
	"reliance digital": {Name: "Reliance Digital", Category: domain.CategoryShopping, Subcategory: "Electronics", Confidence: 0.95},
	"ikea":             {Name: "IKEA", Category: domain.CategoryShopping, Subcategory: "Home", Confidence: 0.95},

	// Utilities, telecom and bills
	"airtel":        {Name: "Airtel", Category: domain.CategoryUtilities, Subcategory: "Telecom", Confidence: 0.95},
	"jio recharge":  {Name: "Jio", Category: domain.CategoryUtilities, Subcategory: "Telecom", Confidence: 0.95},
	"vi recharge":   {Name: "Vi", Category: domain.CategoryUtilities, Subcategory: "Telecom", Confidence: 0.95},
	"vodafone idea": {Name: "Vi", Category: domain.CategoryUtilities, Subcategory: "Telecom", Confidence: 0.95},
	"bsnl":          {Name: "BSNL", Category: domain.CategoryUtilities, Subcategory: "Telecom", Confidence: 0.95},
	"tata power":    {Name: "Tata Power", Category: domain.CategoryUtilities, Subcategory: "Electricity", Confidence: 0.95},
	"adani electricity": {Name: "Adani Electricity", Category: domain.CategoryUtilities, Subcategory: "Electricity", Confidence: 0.95},
	"bescom":        {Name: "BESCOM", Category: domain.CategoryUtilities, Subcategory: "Electricity", Confidence: 0.95},
	"act fibernet":  {Name: "ACT Fibernet", Category: domain.CategoryUtilities, Subcategory: "Broadband", Confidence: 0.95},
	"hathway":       {Name: "Hathway", Category: domain.CategoryUtilities, Subcategory: "Broadband", Confidence: 0.95},

	// Entertainment and streaming
	"netflix":    {Name: "Netflix", Category: domain.CategoryEntertainment, Subcategory: "Streaming", Confidence: 0.95},
	"hotstar":    {Name: "Disney+ Hotstar", Category: domain.CategoryEntertainment, Subcategory: "Streaming", Confidence: 0.95},
	"spotify":    {Name: "Spotify", Category: domain.CategoryEntertainment, Subcategory: "Streaming", Confidence: 0.95},
	"prime video": {Name: "Prime Video", Category: domain.CategoryEntertainment, Subcategory: "Streaming", Confidence: 0.95},
	"sonyliv":    {Name: "SonyLIV", Category: domain.CategoryEntertainment, Subcategory: "Streaming", Confidence: 0.95},
	"zee5":       {Name: "ZEE5", Category: domain.CategoryEntertainment, Subcategory: "Streaming", Confidence: 0.95},
	"bookmyshow": {Name: "BookMyShow", Category: domain.CategoryEntertainment, Subcategory: "Movies", Confidence: 0.95},
	"pvr":        {Name: "PVR", Category: domain.CategoryEntertainment, Subcategory: "Movies", Confidence: 0.95},
	"inox":       {Name: "INOX", Category: domain.CategoryEntertainment, Subcategory: "Movies", Confidence: 0.95},
	"jiosaavn":   {Name: "JioSaavn", Category: domain.CategoryEntertainment, Subcategory: "Streaming", Confidence: 0.95},

	// Health
	"apollo":     {Name: "Apollo", Category: domain.CategoryHealth, Confidence: 0.95},
	"pharmeasy":  {Name: "PharmEasy", Category: domain.CategoryHealth, Subcategory: "Pharmacy", Confidence: 0.95},
	"tata 1mg":   {Name: "Tata 1mg", Category: domain.CategoryHealth, Subcategory: "Pharmacy", Confidence: 0.95},
	"netmeds":    {Name: "Netmeds", Category: domain.CategoryHealth, Subcategory: "Pharmacy", Confidence: 0.95},
	"medplus":    {Name: "MedPlus", Category: domain.CategoryHealth, Subcategory: "Pharmacy", Confidence: 0.95},
	"practo":     {Name: "Practo", Category: domain.CategoryHealth, Subcategory: "Consultation", Confidence: 0.95},
	"cult.fit":   {Name: "Cult.fit", Category: domain.CategoryHealth, Subcategory: "Fitness", Confidence: 0.95},
	"cultfit":    {Name: "Cult.fit", Category: domain.CategoryHealth, Subcategory: "Fitness", Confidence: 0.95},
}

// categoryKeywords maps generic description keywords to categories for
// merchants the rule table has never heard of. Matches are lower confidence
// so a model tier still gets a chance.
var categoryKeywords = map[string]domain.Category{
	"restaurant": domain.CategoryFood,
	"cafe":       domain.CategoryFood,
	"coffee":     domain.CategoryFood,
	"bakery":     domain.CategoryFood,
	"pizza":      domain.CategoryFood,
	"biryani":    domain.CategoryFood,
	"dhaba":      domain.CategoryFood,

	"grocer":      domain.CategoryGroceries,
	"supermarket": domain.CategoryGroceries,
	"kirana":      domain.CategoryGroceries,
	"provision":   domain.CategoryGroceries,

	"fuel":    domain.CategoryTransport,
	"petrol":  domain.CategoryTransport,
	"diesel":  domain.CategoryTransport,
	"toll":    domain.CategoryTransport,
	"parking": domain.CategoryTransport,
	"cab":     domain.CategoryTransport,
	"taxi":    domain.CategoryTransport,
	"metro":   domain.CategoryTransport,
	"railway": domain.CategoryTransport,

	"mall":   domain.CategoryShopping,
	"mart":   domain.CategoryShopping,
	"retail": domain.CategoryShopping,
	"store":  domain.CategoryShopping,

	"recharge":    domain.CategoryUtilities,
	"electricity": domain.CategoryUtilities,
	"broadband":   domain.CategoryUtilities,
	"postpaid":    domain.CategoryUtilities,
	"prepaid":     domain.CategoryUtilities,
	"dth":         domain.CategoryUtilities,
	"gas bill":    domain.CategoryUtilities,
	"water bill":  domain.CategoryUtilities,

	"cinema": domain.CategoryEntertainment,
	"movie":  domain.CategoryEntertainment,
	"gaming": domain.CategoryEntertainment,

	"pharmacy": domain.CategoryHealth,
	"hospital": domain.CategoryHealth,
	"clinic":   domain.CategoryHealth,
	"doctor":   domain.CategoryHealth,
	"medical":  domain.CategoryHealth,
	"diagnost": domain.CategoryHealth,

	"neft":          domain.CategoryTransfers,
	"imps":          domain.CategoryTransfers,
	"rtgs":          domain.CategoryTransfers,
	"self transfer": domain.CategoryTransfers,
	"salary":        domain.CategoryTransfers,
}

// Rules is the first, always-available tier. Categorize never fails and
// never returns an absent result.
type Rules struct {
	merchantKeys []string // merchantRules keys, longest first
	keywordKeys  []string // categoryKeywords keys, longest first
}

// NewRules compiles the lookup order. Longer keys are tried before shorter
// ones so "pizza hut" wins over "pizza" and "uber eats" phrasing never
// falls through to a shorter accidental match.
func NewRules() *Rules {
	r := &Rules{
		merchantKeys: make([]string, 0, len(merchantRules)),
		keywordKeys:  make([]string, 0, len(categoryKeywords)),
	}
	for key := range merchantRules {
		r.merchantKeys = append(r.merchantKeys, key)
	}
	for key := range categoryKeywords {
		r.keywordKeys = append(r.keywordKeys, key)
	}
	byLengthDesc(r.merchantKeys)
	byLengthDesc(r.keywordKeys)
	return r
}

func byLengthDesc(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
}

// Categorize matches the transaction's merchant text against the rule
// tables: known merchants first, then generic keywords, then a direction
// hint, then a low-confidence OTHER.
func (r *Rules) Categorize(tx *domain.ExtractedTransaction) domain.Categorization {
	haystack := strings.ToLower(tx.MerchantClean + " " + tx.MerchantRaw)

	for _, key := range r.merchantKeys {
		if strings.Contains(haystack, key) {
			rule := merchantRules[key]
			return domain.Categorization{
				Category:     rule.Category,
				Subcategory:  rule.Subcategory,
				MerchantName: rule.Name,
				Confidence:   rule.Confidence,
				Source:       domain.SourceRule,
			}
		}
	}

	for _, key := range r.keywordKeys {
		if strings.Contains(haystack, key) {
			return domain.Categorization{
				Category:   categoryKeywords[key],
				Confidence: 0.60,
				Source:     domain.SourceRule,
			}
		}
	}

	switch tx.Direction {
	case domain.DirectionTransfer:
		return domain.Categorization{
			Category:   domain.CategoryTransfers,
			Confidence: 0.90,
			Source:     domain.SourceRule,
		}
	case domain.DirectionInvestment:
		return domain.Categorization{
			Category:    domain.CategoryTransfers,
			Subcategory: "Investment",
			Confidence:  0.75,
			Source:      domain.SourceRule,
		}
	}

	return domain.Categorization{
		Category:   domain.CategoryOther,
		Confidence: 0.30,
		Source:     domain.SourceRule,
	}
}
