package organizer

import (
	"os"
	"sort"

	"autosort/internal/faults"
	"autosort/internal/logging"
)

// SubcategoryReport aggregates the files that would land in one subcategory.
type SubcategoryReport struct {
	Name  string
	Files int
	Bytes int64
}

// CategoryReport aggregates the files that would land in one category.
type CategoryReport struct {
	Name          string
	Files         int
	Bytes         int64
	Subcategories []SubcategoryReport
}

// Report is the outcome of an analyze pass: how the current contents of a
// directory would be organized, without moving anything.
type Report struct {
	SourceDir  string
	TotalFiles int
	TotalBytes int64
	Categories []CategoryReport
}

// Analyze classifies every eligible file under sourceDir and tallies the
// results per category and subcategory. The filesystem is never modified.
// Categories are ordered by file count descending, then name.
func (o *Orchestrator) Analyze(sourceDir string, ignorePatterns []string) (*Report, error) {
	info := o.resolver.Validate(sourceDir)
	if !info.Exists || !info.IsDirectory {
		return nil, faults.Wrap(faults.ErrValidation, "organizer", "analyze", invalidReason(info), nil)
	}
	files, err := o.scan(sourceDir, ignorePatterns)
	if err != nil {
		return nil, faults.Wrap(faults.ErrPermission, "organizer", "scan source", sourceDir, err)
	}

	report := &Report{SourceDir: sourceDir, TotalFiles: len(files)}
	categories := make(map[string]*CategoryReport)
	subcategories := make(map[string]map[string]*SubcategoryReport)

	for _, file := range files {
		decision := o.classifier.Classify(file)
		var size int64
		if st, err := os.Stat(file); err == nil {
			size = st.Size()
		} else {
			o.logger.Debug("stat failed during analyze", logging.String("file", file), logging.Error(err))
		}

		cat := categories[decision.Category]
		if cat == nil {
			cat = &CategoryReport{Name: decision.Category}
			categories[decision.Category] = cat
		}
		cat.Files++
		cat.Bytes += size
		report.TotalBytes += size

		if decision.Subcategory == "" {
			continue
		}
		subs := subcategories[decision.Category]
		if subs == nil {
			subs = make(map[string]*SubcategoryReport)
			subcategories[decision.Category] = subs
		}
		sub := subs[decision.Subcategory]
		if sub == nil {
			sub = &SubcategoryReport{Name: decision.Subcategory}
			subs[decision.Subcategory] = sub
		}
		sub.Files++
		sub.Bytes += size
	}

	for name, cat := range categories {
		for _, sub := range subcategories[name] {
			cat.Subcategories = append(cat.Subcategories, *sub)
		}
		subs := cat.Subcategories
		sort.Slice(subs, func(i, j int) bool {
			return reportLess(subs[i].Files, subs[j].Files, subs[i].Name, subs[j].Name)
		})
		report.Categories = append(report.Categories, *cat)
	}
	cats := report.Categories
	sort.Slice(cats, func(i, j int) bool {
		return reportLess(cats[i].Files, cats[j].Files, cats[i].Name, cats[j].Name)
	})
	return report, nil
}

func reportLess(filesA, filesB int, nameA, nameB string) bool {
	if filesA != filesB {
		return filesA > filesB
	}
	return nameA < nameB
}
