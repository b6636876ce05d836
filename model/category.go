package model

// CategoryID identifies one of the twelve fixed regulatory categories,
// plus the Uncategorized fallback.
type CategoryID string

const (
	CategoryGeneralOperations    CategoryID = "general_operations"
	CategoryAntiCorruption       CategoryID = "anti_corruption"
	CategoryAcademicCouncil      CategoryID = "academic_council"
	CategoryStructuralDivisions  CategoryID = "structural_divisions"
	CategoryEducationalProcess   CategoryID = "educational_process"
	CategoryScientificWork       CategoryID = "scientific_work"
	CategoryFinancialActivities  CategoryID = "financial_activities"
	CategoryInformationActivity  CategoryID = "information_activities"
	CategorySocialCivic          CategoryID = "social_civic"
	CategoryDormitories          CategoryID = "dormitories"
	CategoryHRManagement         CategoryID = "hr_management"
	CategorySafety               CategoryID = "safety"
	CategoryUncategorized        CategoryID = "uncategorized"
)

// CategoryOrder is the fixed discovery order the Fetcher cycles through
// when assigning headings to categories (§4.1). Uncategorized is the
// fallback and is never part of this cycle.
var CategoryOrder = []CategoryID{
	CategoryGeneralOperations,
	CategoryAntiCorruption,
	CategoryAcademicCouncil,
	CategoryStructuralDivisions,
	CategoryEducationalProcess,
	CategoryScientificWork,
	CategoryFinancialActivities,
	CategoryInformationActivity,
	CategorySocialCivic,
	CategoryDormitories,
	CategoryHRManagement,
	CategorySafety,
}

// Category is the bilingual, document-counted taxonomy entry produced
// once by the catalog builder (§3, §6 artifact 4).
type Category struct {
	ID             CategoryID `json:"id"`
	NameUK         string     `json:"name_uk"`
	NameEN         string     `json:"name_en"`
	Icon           string     `json:"icon"`
	DescriptionUK  string     `json:"description_uk"`
	DescriptionEN  string     `json:"description_en"`
	DocumentCount  int        `json:"document_count"`
}

// Language is the detected document or query language (§3).
type Language string

const (
	LanguageUK Language = "uk"
	LanguageEN Language = "en"
)

// DocumentType is the detected source format (§3).
type DocumentType string

const (
	DocumentTypePDF     DocumentType = "pdf"
	DocumentTypeDOCX    DocumentType = "docx"
	DocumentTypeDOC     DocumentType = "doc"
	DocumentTypeUnknown DocumentType = "unknown"
)

// categoryDefs is the bilingual metadata backing CategoryDefinition, and
// through it the category lists of documents.json and categories.json. Names and descriptions are editorial content,
// not derived from the source corpus.
var categoryDefs = map[CategoryID]Category{
	CategoryGeneralOperations: {
		ID: CategoryGeneralOperations, NameUK: "Загальна діяльність", NameEN: "General Operations",
		Icon: "building", DescriptionUK: "Статут, положення про університет, загальні накази.",
		DescriptionEN: "Charter, university regulations, general orders.",
	},
	CategoryAntiCorruption: {
		ID: CategoryAntiCorruption, NameUK: "Запобігання корупції", NameEN: "Anti-Corruption",
		Icon: "shield", DescriptionUK: "Антикорупційна програма та пов'язані документи.",
		DescriptionEN: "Anti-corruption program and related policy documents.",
	},
	CategoryAcademicCouncil: {
		ID: CategoryAcademicCouncil, NameUK: "Вчена рада", NameEN: "Academic Council",
		Icon: "users", DescriptionUK: "Положення про вчену раду та її рішення.",
		DescriptionEN: "Academic council regulations and decisions.",
	},
	CategoryStructuralDivisions: {
		ID: CategoryStructuralDivisions, NameUK: "Структурні підрозділи", NameEN: "Structural Divisions",
		Icon: "sitemap", DescriptionUK: "Положення про факультети, кафедри та інші підрозділи.",
		DescriptionEN: "Regulations for faculties, departments, and other divisions.",
	},
	CategoryEducationalProcess: {
		ID: CategoryEducationalProcess, NameUK: "Освітній процес", NameEN: "Educational Process",
		Icon: "book", DescriptionUK: "Положення про організацію навчання, атестацію, практики.",
		DescriptionEN: "Study organization, assessment, and practicum regulations.",
	},
	CategoryScientificWork: {
		ID: CategoryScientificWork, NameUK: "Наукова робота", NameEN: "Scientific Work",
		Icon: "flask", DescriptionUK: "Положення про наукову та науково-технічну діяльність.",
		DescriptionEN: "Scientific and research activity regulations.",
	},
	CategoryFinancialActivities: {
		ID: CategoryFinancialActivities, NameUK: "Фінансова діяльність", NameEN: "Financial Activities",
		Icon: "coins", DescriptionUK: "Положення про оплату праці, стипендії, платні послуги.",
		DescriptionEN: "Pay, scholarships, and paid-services regulations.",
	},
	CategoryInformationActivity: {
		ID: CategoryInformationActivity, NameUK: "Інформаційна діяльність", NameEN: "Information Activities",
		Icon: "broadcast", DescriptionUK: "Положення про сайт, публічну інформацію, відкриті дані.",
		DescriptionEN: "Website, public information, and open-data regulations.",
	},
	CategorySocialCivic: {
		ID: CategorySocialCivic, NameUK: "Соціальна та громадська діяльність", NameEN: "Social & Civic Activities",
		Icon: "hand-heart", DescriptionUK: "Студентське самоврядування, соціальна підтримка.",
		DescriptionEN: "Student self-governance and social support regulations.",
	},
	CategoryDormitories: {
		ID: CategoryDormitories, NameUK: "Гуртожитки", NameEN: "Dormitories",
		Icon: "home", DescriptionUK: "Положення про проживання в гуртожитках.",
		DescriptionEN: "Dormitory residence regulations.",
	},
	CategoryHRManagement: {
		ID: CategoryHRManagement, NameUK: "Кадрова робота", NameEN: "HR Management",
		Icon: "id-card", DescriptionUK: "Положення про прийом на роботу, атестацію персоналу.",
		DescriptionEN: "Hiring and staff assessment regulations.",
	},
	CategorySafety: {
		ID: CategorySafety, NameUK: "Безпека життєдіяльності", NameEN: "Safety",
		Icon: "hard-hat", DescriptionUK: "Охорона праці, цивільний захист, протипожежна безпека.",
		DescriptionEN: "Labor protection, civil defense, and fire safety regulations.",
	},
	CategoryUncategorized: {
		ID: CategoryUncategorized, NameUK: "Без категорії", NameEN: "Uncategorized",
		Icon: "question", DescriptionUK: "Документи поза фіксованою таксономією.",
		DescriptionEN: "Documents outside the fixed taxonomy.",
	},
}

// CategoryDefinition returns the bilingual metadata for id, falling back
// to Uncategorized's metadata with id substituted in if id is unknown.
func CategoryDefinition(id CategoryID) Category {
	if def, ok := categoryDefs[id]; ok {
		return def
	}
	fallback := categoryDefs[CategoryUncategorized]
	fallback.ID = id
	return fallback
}
