package registry

import "sumarena/internal/domain"

const (
	defaultMaxWords = 150
	maxOutputWords  = 500
)

func catalog() []domain.ModelDescriptor {
	remote := []struct {
		id      string
		display string
		vendor  string
		size    string
	}{
		{"llama-3.1-70b-versatile", "Llama 3.1 70B", "Meta", "70B"},
		{"llama-3.1-8b-instant", "Llama 3.1 8B", "Meta", "8B"},
		{"llama3-70b-8192", "Llama 3 70B", "Meta", "70B"},
		{"llama3-8b-8192", "Llama 3 8B", "Meta", "8B"},
		{"mixtral-8x7b-32768", "Mixtral 8x7B", "Mistral AI", "8x7B"},
		{"gemma-7b-it", "Gemma 7B", "Google", "7B"},
		{"gemma2-9b-it", "Gemma 2 9B", "Google", "9B"},
	}

	local := []struct {
		id      string
		display string
		vendor  string
		size    string
	}{
		{"llama3.1:8b", "Llama 3.1 8B", "Meta", "8B"},
		{"llama3.1:70b", "Llama 3.1 70B", "Meta", "70B"},
		{"llama3:8b", "Llama 3 8B", "Meta", "8B"},
		{"mistral:7b", "Mistral 7B", "Mistral AI", "7B"},
		{"gemma:7b", "Gemma 7B", "Google", "7B"},
		{"gemma2:9b", "Gemma 2 9B", "Google", "9B"},
		{"phi3:mini", "Phi-3 Mini", "Microsoft", "3.8B"},
		{"codellama:7b", "CodeLlama 7B", "Meta", "7B"},
		{"neural-chat:7b", "Neural Chat 7B", "Intel", "7B"},
	}

	descriptors := make([]domain.ModelDescriptor, 0, len(remote)+len(local))

	for _, m := range remote {
		descriptors = append(descriptors, domain.ModelDescriptor{
			ID:              m.id,
			Family:          domain.FamilyRemote,
			DisplayName:     m.display,
			Vendor:          m.vendor,
			SizeClass:       m.size,
			DefaultMaxWords: defaultMaxWords,
			MaxOutputWords:  maxOutputWords,
		})
	}

	for _, m := range local {
		descriptors = append(descriptors, domain.ModelDescriptor{
			ID:              m.id,
			Family:          domain.FamilyLocal,
			DisplayName:     m.display,
			Vendor:          m.vendor,
			SizeClass:       m.size,
			DefaultMaxWords: defaultMaxWords,
			MaxOutputWords:  maxOutputWords,
		})
	}

	return descriptors
}
