package pipeline

import "cardsmith/internal/card"

// Each crew follows the same shape: architect designs, programmer
// implements, tester covers, reviewer signs off. Only the role and task
// text differ per technology; that text is domain content, not contract.

// NewReactCrew builds the React processing crew.
func NewReactCrew() Pipeline {
	return NewCrew(card.TechReact,
		Stage{
			Name: "architecture",
			Role: "You are a principal React architect. You design component hierarchies, choose state management boundaries, and plan custom hooks for large React applications.",
			Task: "Design the React architecture for this card: component hierarchy with data flow, component specifications with prop interfaces, state management strategy, custom hooks, and the directory layout.",
		},
		Stage{
			Name: "implementation",
			Role: "You are a senior React developer. You write modern function components with hooks, TypeScript-ready props, and accessible JSX.",
			Task: "Implement the architecture from the previous stage. Produce complete component and hook source files with imports, no placeholders.",
		},
		Stage{
			Name: "testing",
			Role: "You are a React testing specialist fluent in React Testing Library and Jest.",
			Task: "Write the test suite for the implementation: rendering, user interaction, and edge cases for every acceptance criterion.",
		},
		Stage{
			Name: "review",
			Role: "You are a React code reviewer focused on correctness, rendering performance, and accessibility.",
			Task: "Review the architecture, implementation, and tests. List concrete issues with fixes, then produce the final consolidated deliverable.",
		},
	)
}

// NewRailsCrew builds the Ruby on Rails processing crew.
func NewRailsCrew() Pipeline {
	return NewCrew(card.TechRails,
		Stage{
			Name: "architecture",
			Role: "You are a principal Ruby on Rails architect. You design RESTful resources, ActiveRecord schemas, and service objects following Rails conventions.",
			Task: "Design the Rails architecture for this card: models with associations and validations, migrations, controllers, routes, and service objects where logic outgrows the model.",
		},
		Stage{
			Name: "implementation",
			Role: "You are a senior Rails developer who writes idiomatic Ruby and leans on Rails conventions over configuration.",
			Task: "Implement the architecture from the previous stage. Produce complete models, migrations, controllers, and views or serializers.",
		},
		Stage{
			Name: "testing",
			Role: "You are a Rails testing specialist fluent in RSpec and FactoryBot.",
			Task: "Write the spec suite for the implementation: model specs, request specs, and factories covering every acceptance criterion.",
		},
		Stage{
			Name: "review",
			Role: "You are a Rails code reviewer focused on convention adherence, N+1 queries, and mass-assignment safety.",
			Task: "Review the architecture, implementation, and specs. List concrete issues with fixes, then produce the final consolidated deliverable.",
		},
	)
}

// NewApexCrew builds the Salesforce Apex processing crew.
func NewApexCrew() Pipeline {
	return NewCrew(card.TechApex,
		Stage{
			Name: "architecture",
			Role: "You are a principal Salesforce architect. You design Apex classes, triggers, and Lightning components within governor limits.",
			Task: "Design the Salesforce architecture for this card: object model, Apex class structure, trigger handlers, and bulkification strategy.",
		},
		Stage{
			Name: "implementation",
			Role: "You are a senior Apex developer who writes bulk-safe, governor-limit-aware code with proper sharing declarations.",
			Task: "Implement the architecture from the previous stage. Produce complete Apex classes and triggers, bulkified and with explicit sharing.",
		},
		Stage{
			Name: "testing",
			Role: "You are a Salesforce testing specialist who writes isolated Apex test classes with meaningful assertions.",
			Task: "Write Apex test classes for the implementation: positive, negative, and bulk scenarios reaching at least 90% coverage.",
		},
		Stage{
			Name: "review",
			Role: "You are an Apex code reviewer focused on governor limits, SOQL injection, and sharing rules.",
			Task: "Review the architecture, implementation, and tests. List concrete issues with fixes, then produce the final consolidated deliverable.",
		},
	)
}

// NewFrontendCrew builds the plain HTML/CSS/JS processing crew.
func NewFrontendCrew() Pipeline {
	return NewCrew(card.TechFrontend,
		Stage{
			Name: "architecture",
			Role: "You are a principal frontend architect. You design semantic HTML structure, maintainable CSS, and framework-free JavaScript modules.",
			Task: "Design the frontend architecture for this card: page structure, CSS organization, and JavaScript module boundaries.",
		},
		Stage{
			Name: "implementation",
			Role: "You are a senior frontend developer who writes semantic HTML, modern CSS, and dependency-free JavaScript.",
			Task: "Implement the architecture from the previous stage. Produce complete HTML, CSS, and JavaScript files.",
		},
		Stage{
			Name: "testing",
			Role: "You are a frontend testing specialist who verifies behavior across browsers without heavyweight tooling.",
			Task: "Write the tests and a manual verification checklist covering every acceptance criterion.",
		},
		Stage{
			Name: "review",
			Role: "You are a frontend code reviewer focused on accessibility, performance, and progressive enhancement.",
			Task: "Review the architecture, implementation, and tests. List concrete issues with fixes, then produce the final consolidated deliverable.",
		},
	)
}

// NewGenericCrew builds the fallback crew used when no technology was
// detected. Same contract as the specialized crews, framework-neutral
// prompts.
func NewGenericCrew() Pipeline {
	return NewCrew(card.TechUnknown,
		Stage{
			Name: "architecture",
			Role: "You are a pragmatic software architect comfortable across web stacks.",
			Task: "Pick a reasonable technology for this card based on the codebase analysis, then design the solution: structure, data flow, and interfaces.",
		},
		Stage{
			Name: "implementation",
			Role: "You are a senior developer who writes clear, conventional code in whatever stack the design calls for.",
			Task: "Implement the design from the previous stage. Produce complete source files, no placeholders.",
		},
		Stage{
			Name: "review",
			Role: "You are a thorough code reviewer.",
			Task: "Review the design and implementation. List concrete issues with fixes, then produce the final consolidated deliverable.",
		},
	)
}
