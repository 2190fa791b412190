package knowledge

import "github.com/dhruva-pgrs/triage/internal/domain"

// Department labels handled by the platform.
const (
	DeptSocialWelfare  = "Social Welfare"
	DeptCivilSupplies  = "Civil Supplies"
	DeptRevenue        = "Revenue"
	DeptMunicipal      = "Municipal Administration"
	DeptWaterResources = "Water Resources"
	DeptPolice         = "Police"
	DeptEducation      = "Education"
	DeptHealth         = "Health"
	DeptHousing        = "Housing"
	DeptAgriculture    = "Agriculture"
	DeptTransport      = "Transport"
	DeptElectricity    = "Electricity"
	DeptPanchayatRaj   = "Panchayat Raj"
	DeptLabour         = "Labour"
	DeptForest         = "Forest"
)

// Default returns the built-in knowledge base. The keyword tables are
// bilingual (Telugu and English) and curated from field grievance data; a
// YAML overlay can replace them per deployment.
func Default() *Base {
	return &Base{
		Departments: []string{
			DeptSocialWelfare, DeptCivilSupplies, DeptRevenue, DeptMunicipal,
			DeptWaterResources, DeptPolice, DeptEducation, DeptHealth,
			DeptHousing, DeptAgriculture, DeptTransport, DeptElectricity,
			DeptPanchayatRaj, DeptLabour, DeptForest,
		},
		DepartmentKeywords: []DepartmentKeyword{
			// Social Welfare
			{Keyword: "పెన్షన్", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "pension", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "వృద్ధాప్య", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "old age", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "వితంతువు", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "widow", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "వికలాంగులు", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "disabled", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "disability", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "సంక్షేమ", Department: DeptSocialWelfare, Confidence: 0.80},
			{Keyword: "welfare", Department: DeptSocialWelfare, Confidence: 0.80},
			{Keyword: "ఆసరా", Department: DeptSocialWelfare, Confidence: 0.85},
			{Keyword: "aasara", Department: DeptSocialWelfare, Confidence: 0.85},

			// Civil Supplies
			{Keyword: "రేషన్", Department: DeptCivilSupplies, Confidence: 0.90},
			{Keyword: "ration", Department: DeptCivilSupplies, Confidence: 0.90},
			{Keyword: "బియ్యం", Department: DeptCivilSupplies, Confidence: 0.85},
			{Keyword: "rice", Department: DeptCivilSupplies, Confidence: 0.80},
			{Keyword: "కిరోసిన్", Department: DeptCivilSupplies, Confidence: 0.85},
			{Keyword: "kerosene", Department: DeptCivilSupplies, Confidence: 0.85},
			{Keyword: "రేషన్ కార్డు", Department: DeptCivilSupplies, Confidence: 0.90},
			{Keyword: "ration card", Department: DeptCivilSupplies, Confidence: 0.90},
			{Keyword: "fair price", Department: DeptCivilSupplies, Confidence: 0.85},
			{Keyword: "pds", Department: DeptCivilSupplies, Confidence: 0.85},

			// Revenue
			{Keyword: "భూమి", Department: DeptRevenue, Confidence: 0.85},
			{Keyword: "land", Department: DeptRevenue, Confidence: 0.80},
			{Keyword: "land registration", Department: DeptRevenue, Confidence: 0.92},
			{Keyword: "land records", Department: DeptRevenue, Confidence: 0.92},
			{Keyword: "పట్టా", Department: DeptRevenue, Confidence: 0.90},
			{Keyword: "patta", Department: DeptRevenue, Confidence: 0.90},
			{Keyword: "సర్వే", Department: DeptRevenue, Confidence: 0.85},
			{Keyword: "survey", Department: DeptRevenue, Confidence: 0.80},
			{Keyword: "ఆక్రమణ", Department: DeptRevenue, Confidence: 0.85},
			{Keyword: "encroachment", Department: DeptRevenue, Confidence: 0.85},
			{Keyword: "రిజిస్ట్రేషన్", Department: DeptRevenue, Confidence: 0.80},
			{Keyword: "registration", Department: DeptRevenue, Confidence: 0.75},

			// Municipal Administration
			{Keyword: "రోడ్డు", Department: DeptMunicipal, Confidence: 0.85},
			{Keyword: "road", Department: DeptMunicipal, Confidence: 0.80},
			{Keyword: "గుంతలు", Department: DeptMunicipal, Confidence: 0.85},
			{Keyword: "pothole", Department: DeptMunicipal, Confidence: 0.85},
			{Keyword: "వీధి లైట్", Department: DeptMunicipal, Confidence: 0.85},
			{Keyword: "street light", Department: DeptMunicipal, Confidence: 0.85},
			{Keyword: "drainage", Department: DeptMunicipal, Confidence: 0.85},
			{Keyword: "డ్రైనేజీ", Department: DeptMunicipal, Confidence: 0.85},
			{Keyword: "చెత్త", Department: DeptMunicipal, Confidence: 0.80},
			{Keyword: "garbage", Department: DeptMunicipal, Confidence: 0.80},

			// Water Resources
			{Keyword: "నీటి", Department: DeptWaterResources, Confidence: 0.85},
			{Keyword: "water supply", Department: DeptWaterResources, Confidence: 0.85},
			{Keyword: "నీరు", Department: DeptWaterResources, Confidence: 0.80},
			{Keyword: "water", Department: DeptWaterResources, Confidence: 0.70},
			{Keyword: "బోరు", Department: DeptWaterResources, Confidence: 0.85},
			{Keyword: "borewell", Department: DeptWaterResources, Confidence: 0.85},

			// Police
			{Keyword: "పోలీస్", Department: DeptPolice, Confidence: 0.85},
			{Keyword: "police", Department: DeptPolice, Confidence: 0.85},
			{Keyword: "fir", Department: DeptPolice, Confidence: 0.90},
			{Keyword: "దొంగతనం", Department: DeptPolice, Confidence: 0.85},
			{Keyword: "theft", Department: DeptPolice, Confidence: 0.85},
			{Keyword: "robbery", Department: DeptPolice, Confidence: 0.85},

			// Education
			{Keyword: "స్కూల్", Department: DeptEducation, Confidence: 0.85},
			{Keyword: "school", Department: DeptEducation, Confidence: 0.85},
			{Keyword: "టీచర్", Department: DeptEducation, Confidence: 0.85},
			{Keyword: "teacher", Department: DeptEducation, Confidence: 0.85},
			{Keyword: "విద్య", Department: DeptEducation, Confidence: 0.80},
			{Keyword: "education", Department: DeptEducation, Confidence: 0.80},

			// Health
			{Keyword: "ఆసుపత్రి", Department: DeptHealth, Confidence: 0.85},
			{Keyword: "hospital", Department: DeptHealth, Confidence: 0.85},
			{Keyword: "వైద్యం", Department: DeptHealth, Confidence: 0.85},
			{Keyword: "doctor", Department: DeptHealth, Confidence: 0.85},
			{Keyword: "medicine", Department: DeptHealth, Confidence: 0.80},
			{Keyword: "మందులు", Department: DeptHealth, Confidence: 0.80},

			// Housing
			{Keyword: "ఇల్లు", Department: DeptHousing, Confidence: 0.80},
			{Keyword: "house", Department: DeptHousing, Confidence: 0.75},
			{Keyword: "గృహ", Department: DeptHousing, Confidence: 0.85},
			{Keyword: "housing", Department: DeptHousing, Confidence: 0.85},
			{Keyword: "site", Department: DeptHousing, Confidence: 0.75},
		},
		Distress: DistressKeywords{
			Critical: []string{
				"చనిపోతున్నాము", "ఆత్మహత్య", "ఆకలి", "చనిపోతాను", "మరణం",
				"బతకలేను", "తినడానికి ఏమీ లేదు", "పిల్లలు ఆకలి", "అసహాయం",
				"dying", "suicide", "starving", "will die", "death",
				"cannot survive", "nothing to eat", "children hungry", "helpless",
				"life threat", "emergency", "critical condition", "desperate",
			},
			High: []string{
				"నెలలుగా", "రాలేదు", "ఆగిపోయింది", "పూర్తిగా", "అత్యవసర",
				"వెంటనే", "తీవ్ర", "చాలా కష్టం", "బాధపడుతున్నాము",
				"months", "not received", "stopped", "completely", "urgent",
				"immediately", "severe", "very difficult", "suffering",
				"delayed", "long pending", "no action", "ignored",
			},
			Medium: []string{
				"సమస్య", "ఇబ్బంది", "చికాకు", "అసౌకర్యం", "తప్పు",
				"problem", "issue", "inconvenience", "trouble",
				"difficulty", "incorrect", "wrong", "not working",
			},
		},
		RiskPatterns: []RiskPattern{
			{
				Name:     "pending_months",
				Keywords: []string{"నెలలుగా", "months", "నెలల", "weeks", "వారాలుగా"},
				Lapse:    "Undue Delay",
				BaseRisk: 0.75,
			},
			{
				Name:     "repeated_complaint",
				Keywords: []string{"again", "మళ్ళీ", "repeated", "multiple times", "పలుసార్లు"},
				Lapse:    "Improper Process",
				BaseRisk: 0.80,
			},
			{
				Name:     "no_response",
				Keywords: []string{"no response", "స్పందన లేదు", "no reply", "ignored", "నిర్లక్ష్యం"},
				Lapse:    "Non-Responsive Officer",
				BaseRisk: 0.85,
			},
			{
				Name:     "bribery",
				Keywords: []string{"bribe", "లంచం", "corruption", "అవినీతి", "money demanded"},
				Lapse:    "Corruption/Misconduct",
				BaseRisk: 0.90,
			},
			{
				Name:     "document_issues",
				Keywords: []string{"rejected", "తిరస్కరించారు", "wrong", "incorrect", "తప్పు"},
				Lapse:    "Improper Documentation",
				BaseRisk: 0.55,
			},
			{
				Name:     "partial_resolution",
				Keywords: []string{"partial", "incomplete", "పూర్తి కాలేదు", "half", "partly"},
				Lapse:    "Incomplete Resolution",
				BaseRisk: 0.60,
			},
			{
				Name:     "transferred",
				Keywords: []string{"transferred", "బదిలీ", "sent to", "referred", "పంపారు"},
				Lapse:    "Improper Routing",
				BaseRisk: 0.45,
			},
			{
				Name:        "revenue_risk",
				Keywords:    []string{"encroachment", "ఆక్రమణ", "land grab", "survey", "సర్వే"},
				Lapse:       "Property Documentation Lapse",
				BaseRisk:    0.50,
				Departments: []string{DeptRevenue},
			},
			{
				Name:        "welfare_risk",
				Keywords:    []string{"pension", "పెన్షన్", "benefit", "ration", "రేషన్"},
				Lapse:       "Benefit Disbursement Lapse",
				BaseRisk:    0.55,
				Departments: []string{DeptSocialWelfare, DeptCivilSupplies},
			},
		},
		Acknowledgments: map[string]domain.Acknowledgment{
			domain.DistressCritical.String(): {
				Category: "Urgent",
				Telugu:   "మీ సమస్య అత్యవసరంగా పరిశీలించబడుతోంది. 24 గంటల్లో స్పందన వస్తుంది.",
				English:  "Your grievance is being treated as urgent. Response within 24 hours.",
			},
			domain.DistressHigh.String(): {
				Category: "High Priority",
				Telugu:   "మీ సమస్య ప్రాధాన్యతగా పరిశీలించబడుతోంది. 3 రోజుల్లో స్పందన వస్తుంది.",
				English:  "Your grievance is being treated as high priority. Response within 3 days.",
			},
			domain.DistressMedium.String(): {
				Category: "Normal",
				Telugu:   "మీ సమస్య నమోదు చేయబడింది. 7 రోజుల్లో స్పందన వస్తుంది.",
				English:  "Your grievance has been registered. Response within 7 days.",
			},
			domain.DistressNormal.String(): {
				Category: "Normal",
				Telugu:   "మీ సమస్య నమోదు చేయబడింది. 14 రోజుల్లో స్పందన వస్తుంది.",
				English:  "Your grievance has been registered. Response within 14 days.",
			},
		},
	}
}
