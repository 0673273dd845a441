package document

import "strings"

// Sample is a built-in document for trying the comparison without
// pasting anything.
type Sample struct {
	Title string
	Text  string
}

// Samples returns the built-in sample documents.
func Samples() []Sample {
	samples := make([]Sample, len(rawSamples))
	for i, s := range rawSamples {
		samples[i] = Sample{
			Title: s.Title,
			Text:  strings.TrimSpace(whitespaceRe.ReplaceAllString(s.Text, " ")),
		}
	}

	return samples
}

var rawSamples = []Sample{
	{
		Title: "AI and Machine Learning",
		Text: `Artificial Intelligence (AI) and Machine Learning (ML) have emerged as
		transformative technologies that are reshaping industries and society. AI refers
		to the simulation of human intelligence in machines, enabling them to perform
		tasks that typically require human cognition, such as learning, reasoning, and
		problem-solving. Machine Learning, a subset of AI, focuses on algorithms that can
		learn and improve from data without explicit programming.

		The applications of AI and ML are vast and growing. In healthcare, these
		technologies assist in medical diagnosis, drug discovery, and personalized
		treatment plans. In finance, they power algorithmic trading, fraud detection,
		and risk assessment. The automotive industry leverages AI for autonomous
		vehicles, while tech companies use ML for recommendation systems, natural
		language processing, and computer vision.

		Recent breakthroughs in deep learning, particularly with neural networks, have
		accelerated AI capabilities. Large language models have revolutionized natural
		language understanding, while computer vision models can now recognize and
		classify images with superhuman accuracy. These advances have made AI more
		accessible and practical for real-world applications.

		However, the rapid advancement of AI also brings challenges. Ethical
		considerations around bias, privacy, and job displacement are increasingly
		important. The need for explainable AI, where algorithms can provide reasoning
		for their decisions, has become crucial for trust and accountability.
		Additionally, the environmental impact of training large AI models and the
		concentration of AI power in few large corporations raise concerns about
		sustainability and democratization of AI benefits.`,
	},
	{
		Title: "Climate Change Solutions",
		Text: `Climate change represents one of the most pressing challenges of our
		time, requiring immediate and comprehensive action. The scientific consensus is
		clear: human activities, particularly the emission of greenhouse gases from
		fossil fuel combustion, are driving unprecedented changes in Earth's climate
		system. Rising global temperatures, melting ice caps, rising sea levels, and
		extreme weather events are already impacting ecosystems and human societies
		worldwide.

		Addressing climate change demands a multi-faceted approach. The transition to
		renewable energy sources such as solar, wind, and hydroelectric power is
		essential for reducing carbon emissions. Energy efficiency improvements in
		buildings, transportation, and industry can significantly lower energy demand.
		Electric vehicles are becoming increasingly viable alternatives to internal
		combustion engines, supported by expanding charging infrastructure and falling
		battery costs.

		Nature-based solutions also play a crucial role. Reforestation and forest
		conservation efforts capture atmospheric carbon while preserving biodiversity.
		Sustainable agriculture practices, including regenerative farming and reduced
		deforestation, can transform food systems from carbon sources into carbon
		sinks. Coastal ecosystem restoration protects communities from rising seas
		while sequestering carbon in mangroves and wetlands.

		Policy measures and international cooperation remain fundamental to climate
		action. Carbon pricing mechanisms create economic incentives for emission
		reductions, while international agreements coordinate global efforts.
		Individual actions, from reducing consumption to supporting sustainable
		businesses, complement systemic changes and demonstrate public demand for
		climate solutions.`,
	},
	{
		Title: "Digital Privacy and Security",
		Text: `In our increasingly connected world, digital privacy and security have
		become paramount concerns for individuals, businesses, and governments alike.
		The proliferation of smartphones, social media platforms, and internet-connected
		devices has created unprecedented opportunities for data collection, often
		without users' full understanding of how their information is being used.

		Personal data has become a valuable commodity in the digital economy.
		Companies collect vast amounts of information about user behavior, preferences,
		and activities to power targeted advertising and product development. While
		this data-driven approach has enabled personalized services and technological
		innovation, it has also raised serious questions about consent, transparency,
		and the potential for misuse.

		Cybersecurity threats continue to evolve in sophistication and scale. Data
		breaches expose millions of personal records, ransomware attacks disrupt
		critical infrastructure, and identity theft affects countless individuals.
		Organizations must invest heavily in security measures, from encryption and
		access controls to employee training and incident response planning.

		Regulatory frameworks are emerging to address these challenges. Privacy
		legislation grants individuals greater control over their personal data,
		including rights to access, correct, and delete their information.
		Individuals can also take steps to protect themselves, using strong unique
		passwords, enabling two-factor authentication, and being mindful of the
		information they share online. The balance between innovation, convenience,
		and privacy remains an ongoing negotiation in the digital age.`,
	},
}
