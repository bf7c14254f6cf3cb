package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// TreeKind represents a built-in rating tree.
	TreeKind string

	// DatabaseBackend represents the database backend for stores.
	DatabaseBackend string

	// RoleIndication classifies a source role as positive or negative.
	RoleIndication string

	// QualityKey identifies a boolean quality indicator on a document.
	QualityKey string

	// DocumentDimension is a categorical dimension of a document.
	DocumentDimension string

	// SourceDimension is a categorical dimension of a document source.
	SourceDimension string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All built-in rating trees.
const (
	ChildrenTree       TreeKind = "children" // default
	MediaDiversityTree TreeKind = "media-diversity"
	CustomTree         TreeKind = "custom"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Role indications.
const (
	PositiveRole RoleIndication = "positive"
	NegativeRole RoleIndication = "negative"
)

// Quality indicator keys.
const (
	QualitySelfHelp     QualityKey = "self_help"
	QualityConsequences QualityKey = "consequences"
	QualitySolutions    QualityKey = "solutions"
	QualityPolicies     QualityKey = "policies"
	QualityCauses       QualityKey = "causes"
	QualityBasicContext QualityKey = "basic_context"
)

// Document dimensions.
const (
	NoDocumentDimension  DocumentDimension = ""
	DocTopic             DocumentDimension = "topic"
	DocTopicGroup        DocumentDimension = "topic_group"
	DocOrigin            DocumentDimension = "origin"
	DocType              DocumentDimension = "type"
	DocTaxonomy          DocumentDimension = "taxonomy"
	DocProvince          DocumentDimension = "province"
	DocPrincipleSupport  DocumentDimension = "principle_supported"
	DocPrincipleViolated DocumentDimension = "principle_violated"
)

// Source dimensions.
const (
	NoSourceDimension SourceDimension = ""
	SourceGender      SourceDimension = "gender"
	SourceRace        SourceDimension = "race"
	SourceAge         SourceDimension = "age"
	SourceRole        SourceDimension = "role"
	SourceAffiliation SourceDimension = "affiliation"
	SourceOrigin      SourceDimension = "origin"
)

// Source types.
const (
	ChildSource  = "child"
	PersonSource = "person"
)

// UnknownCategory replaces NULL or empty categorical values.
const UnknownCategory = "Unknown"

// Canonical gender labels that always get a row.
const (
	MaleGender   = "Male"
	FemaleGender = "Female"
)

// QualityIndicator pairs a quality flag with its display label.
type QualityIndicator struct {
	Key   QualityKey
	Label string
}

// QualityIndicators lists the quality flags in sheet order.
var QualityIndicators = []QualityIndicator{
	{QualitySelfHelp, "Self Help"},
	{QualityConsequences, "Consequences"},
	{QualitySolutions, "Solutions"},
	{QualityPolicies, "Policies"},
	{QualityCauses, "Causes"},
	{QualityBasicContext, "Basic Context"},
}

// Vocabularies used by the built-in rating trees.
var (
	FocusOrigins       = []string{"Eastern Cape", "Limpopo", "Free State", "Mpumalanga", "North West", "Northern Cape"}
	FeaturedTypes      = []string{"News story", "Editorial", "Opinion piece", "Feature/news analysis", "Business", "Sport"}
	SocialJusticeFocus = []string{"Education", "Environment", "Health", "Labour", "Social Issues"}
	MarginalisedVoices = []string{"Citizens", "Academics / Experts / Researchers", "NGOs / CBOs / FBOs", "Unions"}
)

// ChildAbuseTopicGroup is the topic group counted as child abuse coverage.
const ChildAbuseTopicGroup = "2. Child Abuse"

// AllTreeKinds returns the built-in tree kinds.
var AllTreeKinds = []TreeKind{ChildrenTree, MediaDiversityTree}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidTreeKinds lists all selectable tree kinds.
var ValidTreeKinds = map[TreeKind]struct{}{
	ChildrenTree:       {},
	MediaDiversityTree: {},
	CustomTree:         {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
