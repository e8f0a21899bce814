package taxonomy

import "github.com/GlebRadaev/komodohub/internal/domain"

// Tree is phylum -> class -> order -> family -> genera.
type Tree map[string]map[string]map[string]map[string][]string

// DefaultTree returns the built-in classification offered by the report form,
// restricted to the allowed phyla. Each call returns a fresh copy.
func DefaultTree() Tree {
	full := Tree{
		"Chordata": {
			"Mammalia": {
				"Carnivora": {
					"Felidae": {"Panthera", "Felis"},
					"Canidae": {"Canis", "Vulpes"},
					"Ursidae": {"Ursus"},
				},
				"Primates":       {"Hominidae": {"Homo"}, "Cercopithecidae": {"Macaca"}},
				"Artiodactyla":   {"Cervidae": {"Cervus"}},
				"Perissodactyla": {"Equidae": {"Equus"}},
				"Cetacea":        {"Delphinidae": {"Delphinus"}, "Balaenopteridae": {"Balaenoptera"}},
			},
			"Aves": {
				"Passeriformes":   {"Corvidae": {"Corvus", "Pica"}, "Paridae": {"Parus"}, "Sittidae": {"Sitta"}},
				"Accipitriformes": {"Accipitridae": {"Aquila", "Buteo"}},
				"Strigiformes":    {"Strigidae": {"Strix"}, "Tytonidae": {"Tyto"}},
				"Anseriformes":    {"Anatidae": {"Anas"}},
			},
			"Reptilia": {
				"Squamata":   {"Varanidae": {"Varanus"}, "Pythonidae": {"Python"}},
				"Testudines": {"Cheloniidae": {"Chelonia"}},
				"Crocodylia": {"Crocodylidae": {"Crocodylus"}},
			},
			"Amphibia": {
				"Anura":   {"Hylidae": {"Hyla"}, "Ranidae": {"Rana"}},
				"Caudata": {"Salamandridae": {"Salamandra"}},
			},
			"Actinopterygii": {"Perciformes": {"Cichlidae": {"Oreochromis"}}},
		},
		"Arthropoda": {
			"Insecta": {
				"Lepidoptera": {"Papilionidae": {"Papilio"}, "Nymphalidae": {"Vanessa"}},
				"Coleoptera":  {"Carabidae": {"Carabus"}, "Coccinellidae": {"Coccinella"}},
				"Hymenoptera": {"Apidae": {"Apis", "Bombus"}},
			},
			"Arachnida": {"Araneae": {"Salticidae": {"Salticus"}}},
			"Crustacea": {"Decapoda": {"Portunidae": {"Portunus"}}},
		},
		"Mollusca": {
			"Gastropoda":  {"Stylommatophora": {"Helicidae": {"Helix"}}},
			"Cephalopoda": {"Octopoda": {"Octopodidae": {"Octopus"}}},
			"Bivalvia":    {"Venerida": {"Veneridae": {"Ruditapes"}}},
		},
		"Cnidaria": {"Anthozoa": {"Scleractinia": {"Acroporidae": {"Acropora"}}}},
		"Echinodermata": {
			"Asteroidea": {"Valvatida": {"Asteriidae": {"Asterias"}}},
			"Echinoidea": {"Camarodonta": {"Echinidae": {"Paracentrotus"}}},
		},
	}
	return full.Allowed()
}

// Allowed drops every phylum outside the allow-list.
func (t Tree) Allowed() Tree {
	out := make(Tree, len(t))
	for phylum, classes := range t {
		if domain.IsPhylumAllowed(phylum) {
			out[phylum] = classes
		}
	}
	return out
}
