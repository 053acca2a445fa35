package insights

// Technology pairs a display name with the lowercase keyword substrings that
// detect it. The registry is data: adding a technology never touches the
// matching algorithm.
type Technology struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Registry holds the per-category technology definitions consumed by the
// stack detector.
type Registry struct {
	Frameworks     []Technology `json:"frameworks"`
	Databases      []Technology `json:"databases"`
	CloudPlatforms []Technology `json:"cloud_platforms"`
	Tools          []Technology `json:"tools_and_practices"`
}

// DefaultRegistry returns the built-in technology tables. Callers may extend
// or replace the result before constructing a detector.
func DefaultRegistry() Registry {
	return Registry{
		Frameworks: []Technology{
			{Name: "React", Keywords: []string{"react", "jsx", "next.js", "nextjs"}},
			{Name: "Vue", Keywords: []string{"vue", "nuxt"}},
			{Name: "Angular", Keywords: []string{"angular"}},
			{Name: "Django", Keywords: []string{"django"}},
			{Name: "Flask", Keywords: []string{"flask"}},
			{Name: "Rails", Keywords: []string{"rails", "ruby on rails"}},
			{Name: "Spring", Keywords: []string{"spring-boot", "springboot", "spring framework"}},
			{Name: "Express", Keywords: []string{"express.js", "expressjs"}},
			{Name: "Laravel", Keywords: []string{"laravel"}},
			{Name: "Gin", Keywords: []string{"gin-gonic", "gin framework"}},
		},
		Databases: []Technology{
			{Name: "PostgreSQL", Keywords: []string{"postgres", "postgresql", "psql"}},
			{Name: "MySQL", Keywords: []string{"mysql", "mariadb"}},
			{Name: "MongoDB", Keywords: []string{"mongo", "mongodb"}},
			{Name: "Redis", Keywords: []string{"redis"}},
			{Name: "SQLite", Keywords: []string{"sqlite"}},
			{Name: "Elasticsearch", Keywords: []string{"elasticsearch", "elastic"}},
		},
		CloudPlatforms: []Technology{
			{Name: "AWS", Keywords: []string{"aws", "amazon web services", "lambda", "s3", "ec2"}},
			{Name: "GCP", Keywords: []string{"gcp", "google cloud", "firebase"}},
			{Name: "Azure", Keywords: []string{"azure"}},
			{Name: "Docker", Keywords: []string{"docker", "dockerfile", "docker-compose"}},
			{Name: "Kubernetes", Keywords: []string{"kubernetes", "k8s", "helm"}},
			{Name: "Terraform", Keywords: []string{"terraform"}},
			{Name: "Heroku", Keywords: []string{"heroku", "procfile"}},
			{Name: "Vercel", Keywords: []string{"vercel", "netlify"}},
		},
		Tools: []Technology{
			{Name: "CI/CD", Keywords: []string{"ci/cd", "-ci", "travis", "jenkins", "github actions", "workflows", "circleci"}},
			{Name: "Testing", Keywords: []string{"test", "jest", "pytest", "rspec", "mocha"}},
			{Name: "Linting", Keywords: []string{"eslint", "pylint", "rubocop", "golangci"}},
			{Name: "Make", Keywords: []string{"makefile"}},
			{Name: "GraphQL", Keywords: []string{"graphql"}},
			{Name: "gRPC", Keywords: []string{"grpc", "protobuf"}},
		},
	}
}

// Language sets used by the Full-Stack pattern predicate.
var (
	frontendLanguages = map[string]bool{
		"JavaScript": true, "TypeScript": true, "HTML": true,
		"CSS": true, "Vue": true, "React": true,
	}
	backendLanguages = map[string]bool{
		"Python": true, "Ruby": true, "Java": true, "Go": true,
		"C#": true, "PHP": true, "Node.js": true,
	}
)

// mobileTopics triggers the Mobile Development pattern.
var mobileTopics = map[string]bool{
	"mobile": true, "ios": true, "android": true,
	"react-native": true, "flutter": true,
}

// censusBuckets defines the fixed project-type census: bucket name to the
// topics that place a repository in it.
var censusBuckets = []struct {
	Name   string
	Topics map[string]bool
}{
	{Name: "web", Topics: map[string]bool{
		"web": true, "website": true, "webapp": true, "frontend": true, "backend": true,
	}},
	{Name: "libraries", Topics: map[string]bool{
		"library": true, "sdk": true, "framework": true, "package": true,
	}},
	{Name: "tools", Topics: map[string]bool{
		"cli": true, "tool": true, "tooling": true, "automation": true, "devops": true,
	}},
	{Name: "data-science", Topics: map[string]bool{
		"data-science": true, "machine-learning": true, "ml": true, "ai": true, "data": true,
	}},
	{Name: "mobile", Topics: map[string]bool{
		"mobile": true, "ios": true, "android": true, "react-native": true, "flutter": true,
	}},
}
