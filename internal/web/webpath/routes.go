package webpath

const (
	Home = "/"

	Rosters = "/rosters"
	Roster  = Rosters + "/:channel"

	Api        = "/api"
	ApiRoster  = Api + Roster
	ApiTeams   = ApiRoster + "/teams"
	ApiHealthz = Api + "/healthz"
)

func Path() map[string]string {
	return map[string]string{
		"Home":    Home,
		"Rosters": Rosters,
		"Api":     Api,
	}
}
