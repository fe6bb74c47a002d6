package web

import (
	"github.com/JaTvoiRabotnik/bushido/internal/duel"
	"gopkg.in/yaml.v3"
)

func parseLoadoutYAML(data []byte) (duel.LoadoutFile, error) {
	var lf duel.LoadoutFile
	err := yaml.Unmarshal(data, &lf)
	return lf, err
}
