package tags

import (
	"github.com/pluqqy/pluqqy-catalog/pkg/files"
)

// CountTagUsage counts how many tables carry each tag
func CountTagUsage() (map[string]int, error) {
	stats := make(map[string]int)

	tables, err := files.LoadTables()
	if err != nil {
		return nil, err
	}

	for _, table := range tables {
		for _, tag := range table.Tags {
			stats[tag]++
		}
	}

	return stats, nil
}

// TablesWithTag returns the ids of tables carrying tag
func TablesWithTag(tag string) ([]int64, error) {
	tables, err := files.LoadTables()
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, table := range tables {
		for _, t := range table.Tags {
			if t == tag {
				ids = append(ids, table.ID)
				break
			}
		}
	}
	return ids, nil
}
