package config

const (
	defaultStateDir          = "~/.local/share/autosort"
	defaultLogDir            = "~/.local/share/autosort/logs"
	defaultIgnoreFile        = ".sortignore"
	defaultMaxTransactions   = 50
	defaultWatchDebounceSecs = 5
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults, including the
// built-in category tree.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Organize: Organize{
			IgnoreFile:      defaultIgnoreFile,
			MaxTransactions: defaultMaxTransactions,
		},
		Watch: Watch{
			DebounceSeconds: defaultWatchDebounceSecs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Categories: builtinCategories(),
	}
}

// builtinCategories returns the default classification tree. Order matters:
// the extension map is flattened in this order with later entries winning, so
// e.g. .csv lands in Spreadsheets and .tif in GIS.
func builtinCategories() []Category {
	return []Category{
		{
			Name:       "Images",
			FolderName: "Images",
			Extensions: []string{
				".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".heic", ".raw",
				".svg", ".webp", ".psd", ".ai", ".eps", ".ico", ".avif", ".jxl", ".jp2",
				".j2k", ".jpf", ".jpx", ".tga", ".dng", ".cr2", ".nef", ".orf", ".arw", ".icns",
			},
			Subcategories: []Subcategory{
				{
					FolderName:     "Screenshots",
					Patterns:       []string{"Screenshot*", "Screen Shot*"},
					ExifIndicators: []string{"screenshot_software"},
				},
				{
					FolderName:     "Adobe Edited",
					ExifIndicators: []string{"Adobe Photoshop", "Adobe Lightroom", "Adobe Camera Raw", "Adobe"},
				},
				{
					FolderName:     "Camera Photos",
					ExifIndicators: []string{"camera_make", "camera_model"},
				},
				{
					FolderName:     "Web Downloads",
					Patterns:       []string{"image*", "img*", "photo*"},
					ExifIndicators: []string{"web_browser", "download_software"},
				},
				{
					FolderName: "Design Files",
					Extensions: []string{".psd", ".ai", ".eps", ".sketch", ".fig"},
				},
				{
					FolderName: "RAW Photos",
					Extensions: []string{".raw", ".dng", ".cr2", ".nef", ".arw", ".orf"},
				},
			},
		},
		{
			Name:       "Audio",
			FolderName: "Audio",
			Extensions: []string{
				".mp3", ".wav", ".flac", ".aac", ".m4a", ".ogg", ".wma", ".aiff", ".alac",
				".opus", ".amr", ".mid", ".midi", ".wv", ".ra", ".ape", ".dts",
			},
			Subcategories: []Subcategory{
				{FolderName: "Music", Patterns: []string{"*music*", "*song*", "*track*", "*album*", "*playlist*"}},
				{FolderName: "Podcasts", Patterns: []string{"*podcast*", "*episode*", "*show*"}},
				{FolderName: "Voice Recordings", Patterns: []string{"*voice*", "*recording*", "*memo*", "*note*", "*interview*"}},
				{FolderName: "Sound Effects", Patterns: []string{"*sfx*", "*sound*", "*effect*", "*audio*"}},
				{FolderName: "Audiobooks", Patterns: []string{"*audiobook*", "*book*", "*chapter*"}},
			},
		},
		{
			Name:       "Video",
			FolderName: "Video",
			Extensions: []string{
				".mp4", ".mov", ".avi", ".mkv", ".flv", ".wmv", ".webm", ".m4v", ".3gp",
				".mpeg", ".mpg", ".ts", ".m2ts", ".mts", ".m2v", ".divx", ".ogv", ".h264",
				".h265", ".hevc", ".vob", ".rm", ".asf", ".mxf",
			},
			Subcategories: []Subcategory{
				{FolderName: "Movies", Patterns: []string{"*movie*", "*film*", "*cinema*"}},
				{FolderName: "TV Shows", Patterns: []string{"*episode*", "*season*", "*series*", "*show*"}},
				{FolderName: "Tutorials", Patterns: []string{"*tutorial*", "*howto*", "*guide*", "*lesson*", "*course*"}},
				{FolderName: "Screen Recordings", Patterns: []string{"*screen*", "*recording*", "*capture*", "*demo*"}},
				{FolderName: "Home Videos", Patterns: []string{"*home*", "*family*", "*personal*", "*vacation*", "*trip*"}},
			},
		},
		{
			Name:       "Text",
			FolderName: "Text",
			Extensions: []string{
				".txt", ".md", ".rtf", ".log", ".csv", ".tex", ".json", ".xml", ".yaml",
				".yml", ".ini", ".cfg", ".conf", ".toml", ".adoc", ".asciidoc", ".rst", ".properties",
			},
			Subcategories: []Subcategory{
				{FolderName: "Markdown", Extensions: []string{".md", ".markdown"}},
				{FolderName: "Logs", Extensions: []string{".log"}, Patterns: []string{"*log*", "*error*", "*debug*"}},
				{FolderName: "Data", Extensions: []string{".csv", ".json", ".xml", ".yaml", ".yml"}},
				{FolderName: "Config", Extensions: []string{".ini", ".cfg", ".conf", ".toml", ".properties"}},
				{FolderName: "Notes", Patterns: []string{"*note*", "*todo*", "*readme*"}},
			},
		},
		{
			Name:       "Documents",
			FolderName: "Documents",
			Extensions: []string{".pdf", ".doc", ".docx", ".pages", ".odt"},
			Subcategories: []Subcategory{
				{FolderName: "PDFs", Extensions: []string{".pdf"}},
				{FolderName: "Word Documents", Extensions: []string{".doc", ".docx", ".odt"}},
				{FolderName: "Pages Documents", Extensions: []string{".pages"}},
				{FolderName: "Scanned Documents", Patterns: []string{"*scan*", "*scanned*", "*document*"}},
			},
		},
		{
			Name:       "Code",
			FolderName: "Code",
			Extensions: []string{
				".py", ".js", ".sh", ".rb", ".pl", ".c", ".cpp", ".h", ".java", ".go",
				".rs", ".ts", ".jsx", ".tsx", ".php", ".swift", ".kt", ".kts", ".scala",
				".ps1", ".cs", ".dart", ".r", ".m", ".lua", ".html", ".htm", ".css",
				".scss", ".less", ".vue", ".svelte", ".sql",
			},
			Subcategories: []Subcategory{
				{FolderName: "Python", Extensions: []string{".py", ".pyc", ".pyo", ".pyd"}},
				{FolderName: "JavaScript", Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}},
				{FolderName: "Web", Extensions: []string{".html", ".htm", ".css", ".scss", ".less", ".sass", ".vue", ".svelte"}},
				{FolderName: "Scripts", Extensions: []string{".sh", ".bash", ".zsh", ".ps1", ".bat", ".cmd"}},
				{FolderName: "Mobile", Extensions: []string{".swift", ".kt", ".kts", ".dart"}},
				{FolderName: "Data Science", Extensions: []string{".r", ".m", ".ipynb", ".rdata"}},
			},
		},
		{
			Name:       "Archives",
			FolderName: "Archives",
			Extensions: []string{
				".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".tgz", ".tar.gz",
				".tar.bz2", ".tar.xz", ".zst", ".zstd", ".lz", ".lzma", ".cab", ".ace", ".arj",
			},
			Subcategories: []Subcategory{
				{FolderName: "Compressed", Extensions: []string{".zip", ".rar", ".7z", ".cab", ".ace", ".arj"}},
				{FolderName: "Tarballs", Extensions: []string{".tar", ".tar.gz", ".tar.bz2", ".tar.xz", ".tgz"}},
				{FolderName: "Backups", Patterns: []string{"*backup*"}},
				{FolderName: "Downloads", Patterns: []string{"*download*", "*downloaded*"}},
			},
		},
		{
			Name:       "Minecraft",
			FolderName: "Minecraft",
			Extensions: []string{".jar", ".schem", ".schematic", ".litematic", ".nbt", ".mcfunction"},
		},
		{
			Name:       "NonMac",
			FolderName: "Non-Mac Files",
			Extensions: []string{".exe", ".msi", ".dll", ".com", ".bat", ".cmd", ".sys", ".appimage", ".scr", ".rpm", ".cab", ".pkg"},
		},
		{
			Name:       "DiskImages",
			FolderName: "Disk Images",
			Extensions: []string{".dmg", ".iso", ".img", ".bin", ".toast", ".vhd", ".vhdx", ".vmdk", ".qcow2"},
		},
		{
			Name:       "MusicScores",
			FolderName: "Music Scores",
			Extensions: []string{".mscz", ".mscx"},
		},
		{
			Name:       "3DModels",
			FolderName: "3D Models",
			Extensions: []string{
				".stl", ".obj", ".fbx", ".dae", ".3ds", ".ply", ".glb", ".gltf", ".blend",
				".3mf", ".igs", ".iges", ".stp", ".step",
			},
			Subcategories: []Subcategory{
				{FolderName: "Print Ready", Extensions: []string{".stl", ".3mf"}},
				{FolderName: "CAD Models", Extensions: []string{".igs", ".iges", ".stp", ".step"}},
				{FolderName: "Game Assets", Extensions: []string{".fbx", ".glb", ".gltf"}},
				{FolderName: "Blender Files", Extensions: []string{".blend"}},
				{FolderName: "Scanned Models", Patterns: []string{"*scan*", "*scanned*"}},
			},
		},
		{
			Name:       "eBooks",
			FolderName: "eBooks",
			Extensions: []string{".epub", ".mobi", ".azw", ".azw3", ".fb2"},
		},
		{
			Name:       "Fonts",
			FolderName: "Fonts",
			Extensions: []string{".ttf", ".otf", ".woff", ".woff2", ".fnt"},
		},
		{
			Name:       "Contacts",
			FolderName: "Contact Files",
			Extensions: []string{".vcf", ".vcard"},
		},
		{
			Name:       "Databases",
			FolderName: "Databases",
			Extensions: []string{".db", ".sqlite", ".sql", ".mdb", ".accdb", ".odb", ".dbf"},
		},
		{
			Name:       "Certificates",
			FolderName: "Certificates",
			Extensions: []string{".pem", ".cer", ".crt", ".pfx", ".p12", ".der", ".csr", ".key", ".p7b", ".p7c"},
		},
		{
			Name:       "GIS",
			FolderName: "GIS",
			Extensions: []string{".shp", ".kml", ".kmz", ".gpx", ".geojson", ".gml", ".tif", ".tiff", ".img", ".asc"},
		},
		{
			Name:       "VideoProjects",
			FolderName: "Video Projects",
			Extensions: []string{".prproj", ".veg", ".drp", ".fcpxml", ".aep"},
		},
		{
			Name:       "AudioProjects",
			FolderName: "Audio Projects",
			Extensions: []string{".flp", ".als", ".aup", ".aup3", ".sesx", ".ptx", ".rpp"},
		},
		{
			Name:       "Spreadsheets",
			FolderName: "Spreadsheets",
			Extensions: []string{".xls", ".xlsx", ".xlsm", ".csv", ".tsv"},
		},
		{
			Name:       "Presentations",
			FolderName: "Presentations",
			Extensions: []string{".ppt", ".pptx", ".pps", ".ppsx"},
		},
		{
			Name:       "Torrents",
			FolderName: "Torrents",
			Extensions: []string{".torrent"},
		},
		{
			Name:       "Sideloading",
			FolderName: "Sideloading",
			Extensions: []string{".ipa", ".dylib", ".xapk", ".mobileprovision", ".mobileconfig"},
		},
		{
			Name:       "Subtitles",
			FolderName: "Subtitles",
			Extensions: []string{".srt", ".sub", ".idx", ".ssa", ".ass", ".vtt", ".ttml"},
		},
		{
			Name:       MiscellaneousCategory,
			FolderName: MiscellaneousCategory,
			Extensions: []string{},
		},
	}
}
