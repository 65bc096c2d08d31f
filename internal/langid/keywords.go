package langid

import "strings"

// keywordOrder breaks ties: earlier languages win.
var keywordOrder = []string{"en", "es", "fr", "de", "it", "pt", "hi", "mr"}

// keywords holds common interview vocabulary per Latin-script language, plus
// Hindi and Marathi to tell those two Devanagari languages apart.
var keywords = map[string]string{
	"en": `hello hi hey good morning afternoon evening name email phone experience years year
		position location tech stack programming language framework database cloud tool thank
		thanks you please help interview job career skill technology my is am i i'm the and with
		work working live based in from developer engineer`,
	"es": `hola buenos buenas días tardes noches nombre correo teléfono experiencia años posición
		ubicación tecnología programación lenguaje marco base datos nube herramienta gracias por
		favor ayuda entrevista candidato trabajo carrera habilidad me llamo soy tengo vivo en y con
		mi desarrollador`,
	"fr": `bonjour salut bon matin soir nom téléphone expérience années poste localisation
		technologie programmation langage cadre données nuage outil merci s'il vous plaît aider
		entretien candidat recrutement travail carrière compétence je suis m'appelle j'ai ans
		habite et avec développeur`,
	"de": `hallo guten morgen tag abend telefon erfahrung jahre standort technologie
		programmierung sprache rahmen datenbank wolke werkzeug danke bitte helfen kandidat
		rekrutierung arbeit karriere fähigkeit ich heiße bin habe wohne und mit entwickler`,
	"it": `ciao buongiorno buonasera nome telefono esperienza anni posizione località tecnologia
		programmazione linguaggio strumento grazie favore aiutare intervista candidato
		reclutamento lavoro carriera abilità mi chiamo sono ho vivo sviluppatore`,
	"pt": `olá oi bom dia tarde noite nome telefone experiência anos posição localização
		tecnologia programação linguagem banco dados nuvem ferramenta obrigado obrigada ajudar
		entrevista candidato recrutamento trabalho carreira habilidade meu chamo sou tenho moro
		desenvolvedor`,
	"hi": `नमस्ते सुप्रभात नाम फोन अनुभव साल तकनीक भाषा धन्यवाद मदद सहायता साक्षात्कार
		उम्मीदवार भर्ती करियर कौशल मेरा है हूं`,
	"mr": `नमस्कार दुपार संध्याकाळ नाव वर्षे तंत्रज्ञान मदत सहाय्य मुलाखत उमेदवार भरती करिअर
		कौशल्य माझे आहे आहेत`,
}

// keywordIndex maps a lowercase word to every language that lists it.
var keywordIndex = buildIndex(keywords)

func buildIndex(src map[string]string) map[string][]string {
	idx := make(map[string][]string)
	for _, code := range keywordOrder {
		for _, w := range strings.Fields(src[code]) {
			if n := len(idx[w]); n > 0 && idx[w][n-1] == code {
				continue
			}
			idx[w] = append(idx[w], code)
		}
	}
	return idx
}
