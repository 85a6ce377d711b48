package seed

// YAMLFile is the on-disk layout of a seed file.
type YAMLFile struct {
	Persons     []YAMLPerson     `yaml:"persons"`
	Departments []YAMLDepartment `yaml:"departments"`
}

type YAMLPerson struct {
	Username      string       `yaml:"username"`
	Password      string       `yaml:"password"`
	FirstName     string       `yaml:"first_name"`
	LastName      string       `yaml:"last_name"`
	Email         string       `yaml:"email"`
	Permissions   []string     `yaml:"permissions"`
	Notifications []string     `yaml:"notifications"`
	WorkingDays   []string     `yaml:"working_days"`
	FederalState  string       `yaml:"federal_state"`
	ValidFrom     string       `yaml:"valid_from"`
	Account       *YAMLAccount `yaml:"account"`
}

type YAMLAccount struct {
	AnnualVacationDays    float64 `yaml:"annual_vacation_days"`
	RemainingVacationDays float64 `yaml:"remaining_vacation_days"`
	RemainingNotExpiring  float64 `yaml:"remaining_vacation_days_not_expiring"`
	Comment               string  `yaml:"comment"`
}

// YAMLDepartment references persons by username.
type YAMLDepartment struct {
	Name                   string   `yaml:"name"`
	Description            string   `yaml:"description"`
	Members                []string `yaml:"members"`
	Heads                  []string `yaml:"heads"`
	SecondStageAuthorities []string `yaml:"second_stage_authorities"`
	TwoStageApproval       bool     `yaml:"two_stage_approval"`
}
