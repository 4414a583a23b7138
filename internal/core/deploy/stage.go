package deploy

// DefaultUsername is the remote SSH user of a stage unless WithUsername is given.
const DefaultUsername = "app"

// Stage is a deployable environment such as "production" or "acceptance".
// Stages are created with Configuration.AddStage and are never removed.
type Stage struct {
	name     string
	domain   string
	username string
}

// StageOption customizes a stage created by AddStage.
type StageOption func(*Stage)

// WithUsername sets the remote SSH user of the stage.
func WithUsername(username string) StageOption {
	return func(s *Stage) {
		s.username = username
	}
}

func newStage(name, domain string, opts ...StageOption) *Stage {
	s := &Stage{
		name:     name,
		domain:   domain,
		username: DefaultUsername,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stage name. Deploy commands target stages by this name.
func (s *Stage) Name() string {
	return s.name
}

// Domain returns the host the deploy engine connects to.
func (s *Stage) Domain() string {
	return s.domain
}

// Username returns the remote SSH user.
func (s *Stage) Username() string {
	return s.username
}
