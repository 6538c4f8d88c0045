package draw

// Title banner, drawn by every frontend in a monospace font.
var (
	TitleSanta = []string{
		` ___    _    _  _  _____    _   `,
		`/ __|  /_\  | \| ||_   _|  /_\  `,
		`\__ \ / _ \ | .' |  | |   / _ \ `,
		`|___//_/ \_\|_|\_|  |_|  /_/ \_\`,
	}
	TitleVirus = []string{
		`__   __ ___  ___  _   _  ___ `,
		`\ \ / /|_ _|| _ \| | | |/ __|`,
		` \ V /  | | |   /| |_| |\__ \`,
		`  \_/  |___||_|_\ \___/ |___/`,
	}
)
